package wishlist

import (
	"errors"
	"net/url"
	"time"

	"wishlist-lite/logger"
	"wishlist-lite/metadata"
	"wishlist-lite/models"

	"golang.org/x/net/html"
)

// ErrActiveExists is returned by Restore when the key already has an active
// row, so restoring would create a visible duplicate.
var ErrActiveExists = errors.New("an active item with this url already exists")

// ItemRepository is the storage contract the controller consumes. Lookups
// by (user, url) return every matching row; the schema does not guarantee
// uniqueness for that pair and the controller never assumes a singleton.
type ItemRepository interface {
	Create(item *models.Item) error
	Save(item *models.Item) error
	ListByUser(userID uint, archived bool) ([]models.Item, error)
	FindByURL(userID uint, url string) ([]models.Item, error)
	DeleteByURL(userID uint, url string) error
}

// PageFetcher retrieves a URL as a parsed HTML document.
type PageFetcher interface {
	Fetch(url string) (*html.Node, error)
}

// AddStatus tells the caller which branch an Add took.
type AddStatus string

const (
	StatusAdded    AddStatus = "added"
	StatusExists   AddStatus = "exists"
	StatusRestored AddStatus = "restored"
)

// AddResult carries the Add outcome and the item's title (stored title on
// restore, freshly extracted on add, nil when extraction came up empty).
type AddResult struct {
	Status AddStatus
	Title  *string
}

// Service is the item lifecycle controller. All operations match rows by
// (user, url) and act on the full result set.
type Service struct {
	items   ItemRepository
	fetcher PageFetcher
	log     logger.Logger
	now     func() time.Time
}

func NewService(items ItemRepository, fetcher PageFetcher, log logger.Logger) *Service {
	return &Service{
		items:   items,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
}

// Add creates, restores or refuses an item for (user, url):
//
//   - an archived match is restored in place with a refreshed added date
//     and its stored title reported, without touching the network;
//   - an active match makes Add a no-op reporting "exists";
//   - otherwise the page is fetched, metadata extracted best-effort, and a
//     new active row created. A failed fetch still creates the row, with
//     every metadata field absent.
func (s *Service) Add(userID uint, rawURL string) (AddResult, error) {
	matches, err := s.items.FindByURL(userID, rawURL)
	if err != nil {
		return AddResult{}, err
	}

	for i := range matches {
		if StateOf(matches[i]) != StateArchived {
			continue
		}
		item := &matches[i]
		item.Archived = false
		item.Purchased = false
		item.AddedDate = s.today()
		if err := s.items.Save(item); err != nil {
			return AddResult{}, err
		}
		return AddResult{Status: StatusRestored, Title: item.Title}, nil
	}

	if len(matches) > 0 {
		return AddResult{Status: StatusExists}, nil
	}

	meta := s.fetchMetadata(rawURL)
	item := models.Item{
		UserID:      userID,
		URL:         rawURL,
		Title:       meta.Title,
		Description: meta.Description,
		Image:       meta.Image,
		Price:       meta.Price,
		Source:      hostOf(rawURL),
		AddedDate:   s.today(),
	}
	if err := s.items.Create(&item); err != nil {
		return AddResult{}, err
	}
	return AddResult{Status: StatusAdded, Title: item.Title}, nil
}

// Delete removes every row matching (user, url), duplicates included.
func (s *Service) Delete(userID uint, rawURL string) error {
	return s.items.DeleteByURL(userID, rawURL)
}

// SetPurchased flips the purchased flag on every row matching (user, url),
// archived rows included. The breadth is intentional: purchase marking has
// never been scoped to the active list.
func (s *Service) SetPurchased(userID uint, rawURL string, purchased bool) error {
	matches, err := s.items.FindByURL(userID, rawURL)
	if err != nil {
		return err
	}
	for i := range matches {
		matches[i].Purchased = purchased
		if err := s.items.Save(&matches[i]); err != nil {
			return err
		}
	}
	return nil
}

// ArchivePurchased archives every active purchased item for the user and
// returns how many rows it moved. Unpurchased items are never touched.
func (s *Service) ArchivePurchased(userID uint) (int, error) {
	active, err := s.items.ListByUser(userID, false)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range active {
		if StateOf(active[i]) != StateActivePurchased {
			continue
		}
		active[i].Archived = true
		if err := s.items.Save(&active[i]); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Restore moves archived rows for (user, url) back to the active,
// unpurchased state. It refuses with ErrActiveExists when an active row
// already holds the key, leaving everything unchanged. The added date is
// not refreshed here; only Add's restore path does that.
func (s *Service) Restore(userID uint, rawURL string) error {
	matches, err := s.items.FindByURL(userID, rawURL)
	if err != nil {
		return err
	}
	for i := range matches {
		if StateOf(matches[i]) != StateArchived {
			return ErrActiveExists
		}
	}
	for i := range matches {
		matches[i].Archived = false
		matches[i].Purchased = false
		if err := s.items.Save(&matches[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListActive returns the user's active items, newest first.
func (s *Service) ListActive(userID uint) ([]models.Item, error) {
	return s.items.ListByUser(userID, false)
}

// ListArchived returns the user's archived items, newest first.
func (s *Service) ListArchived(userID uint) ([]models.Item, error) {
	return s.items.ListByUser(userID, true)
}

// fetchMetadata runs the fetch-then-extract pipeline. A fetch failure is
// logged and swallowed: a wishlist entry with no preview beats a rejected
// add.
func (s *Service) fetchMetadata(rawURL string) metadata.Metadata {
	doc, err := s.fetcher.Fetch(rawURL)
	if err != nil {
		s.log.Warn("metadata fetch failed", logger.String("url", rawURL), logger.Error(err))
		return metadata.Metadata{}
	}
	return metadata.Extract(doc)
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

// hostOf derives the item's source from its URL at creation time.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
