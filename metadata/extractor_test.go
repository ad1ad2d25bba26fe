package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func strp(s string) *string { return &s }

func TestExtractTitle(t *testing.T) {
	t.Run("og:title preferred over title element", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta property="og:title" content="OG Product">
			<title>Plain Title</title>
		</head></html>`))
		assert.Equal(t, strp("OG Product"), m.Title)
	})

	t.Run("falls back to trimmed title element", func(t *testing.T) {
		m := Extract(parse(t, `<html><head><title>
			Spaced Title
		</title></head></html>`))
		assert.Equal(t, strp("Spaced Title"), m.Title)
	})

	t.Run("empty og:title still falls back", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta property="og:title" content="">
			<title>Fallback</title>
		</head></html>`))
		assert.Equal(t, strp("Fallback"), m.Title)
	})

	t.Run("absent when page has neither", func(t *testing.T) {
		m := Extract(parse(t, `<html><body><p>nothing here</p></body></html>`))
		assert.Nil(t, m.Title)
	})
}

func TestExtractDescriptionAndImage(t *testing.T) {
	m := Extract(parse(t, `<html><head>
		<meta property="og:description" content="A nice thing">
		<meta property="og:image" content="https://cdn.example/img.jpg">
	</head></html>`))
	assert.Equal(t, strp("A nice thing"), m.Description)
	assert.Equal(t, strp("https://cdn.example/img.jpg"), m.Image)
}

func TestExtractDescriptionHasNoFallback(t *testing.T) {
	m := Extract(parse(t, `<html><head>
		<meta name="description" content="plain html description">
	</head></html>`))
	assert.Nil(t, m.Description)
	assert.Nil(t, m.Image)
}

func TestExtractDistinguishesBlankFromAbsent(t *testing.T) {
	m := Extract(parse(t, `<html><head>
		<meta property="og:description" content="">
	</head></html>`))
	require.NotNil(t, m.Description)
	assert.Equal(t, "", *m.Description)
	assert.Nil(t, m.Image)
}

func TestPriceMetaTagOrdering(t *testing.T) {
	t.Run("product:price:amount wins over everything", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta itemprop="price" content="39.99">
			<meta property="og:price:amount" content="24.99">
			<meta property="product:price:amount" content="19.99">
			<script type="application/ld+json">{"offers":{"price":"29.99"}}</script>
		</head></html>`))
		assert.Equal(t, strp("19.99"), m.Price)
	})

	t.Run("og:price:amount before itemprop", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta itemprop="price" content="39.99">
			<meta property="og:price:amount" content="24.99">
		</head></html>`))
		assert.Equal(t, strp("24.99"), m.Price)
	})

	t.Run("itemprop price as last meta resort", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta itemprop="price" content="39.99">
		</head></html>`))
		assert.Equal(t, strp("39.99"), m.Price)
	})

	t.Run("empty meta content is skipped", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<meta property="product:price:amount" content="">
			<meta property="og:price:amount" content="24.99">
		</head></html>`))
		assert.Equal(t, strp("24.99"), m.Price)
	})
}

func TestPriceFromJSONLD(t *testing.T) {
	t.Run("offers object", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"@type":"Product","offers":{"price":"29.99"}}</script>
		</head></html>`))
		assert.Equal(t, strp("29.99"), m.Price)
	})

	t.Run("offers list takes first element", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"offers":[{"price":"10.00"},{"price":"99.00"}]}</script>
		</head></html>`))
		assert.Equal(t, strp("10.00"), m.Price)
	})

	t.Run("graph array handling", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"@graph":[{"@type":"WebPage"},{"offers":{"price":"42.00"}}]}</script>
		</head></html>`))
		assert.Equal(t, strp("42.00"), m.Price)
	})

	t.Run("numeric price keeps its literal token", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"offers":{"price":129.50}}</script>
		</head></html>`))
		assert.Equal(t, strp("129.50"), m.Price)
	})

	t.Run("malformed block is skipped, scan continues", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{not json at all</script>
			<script type="application/ld+json">{"offers":{"price":"15.00"}}</script>
		</head></html>`))
		assert.Equal(t, strp("15.00"), m.Price)
	})

	t.Run("top-level array is not a candidate", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">[{"offers":{"price":"5.00"}}]</script>
		</head></html>`))
		assert.Nil(t, m.Price)
	})

	t.Run("blocks scanned in document order", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"@type":"BreadcrumbList"}</script>
			<script type="application/ld+json">{"offers":{"price":"7.77"}}</script>
			<script type="application/ld+json">{"offers":{"price":"8.88"}}</script>
		</head></html>`))
		assert.Equal(t, strp("7.77"), m.Price)
	})

	t.Run("empty offers price keeps scanning", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"@graph":[{"offers":{"price":""}},{"offers":{"price":"3.50"}}]}</script>
		</head></html>`))
		assert.Equal(t, strp("3.50"), m.Price)
	})

	t.Run("no offers anywhere", func(t *testing.T) {
		m := Extract(parse(t, `<html><head>
			<script type="application/ld+json">{"@type":"Organization","name":"Shop"}</script>
		</head></html>`))
		assert.Nil(t, m.Price)
	})
}

func TestExtractFullProductPage(t *testing.T) {
	m := Extract(parse(t, `<html><head>
		<title>Raw Title | Shop</title>
		<meta property="og:title" content="Walnut Desk">
		<meta property="og:description" content="A sturdy desk">
		<meta property="og:image" content="https://cdn.example/desk.jpg">
		<script type="application/ld+json">{"@type":"Product","offers":{"price":"249.00","priceCurrency":"EUR"}}</script>
	</head><body></body></html>`))

	assert.Equal(t, strp("Walnut Desk"), m.Title)
	assert.Equal(t, strp("A sturdy desk"), m.Description)
	assert.Equal(t, strp("https://cdn.example/desk.jpg"), m.Image)
	assert.Equal(t, strp("249.00"), m.Price)
}
