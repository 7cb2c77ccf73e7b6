package catalog

import "context"

// Client is a read-only keyed lookup into the item/champion catalog.
// Records and images are static, safe to cache indefinitely by ref.
type Client interface {
	// GetItems returns every item descriptor keyed by item id
	GetItems(ctx context.Context) (map[string]ItemDescriptor, error)

	// GetItem returns one item descriptor, or shared.NotFoundError
	GetItem(ctx context.Context, id string) (ItemDescriptor, error)

	// GetItemImage fetches an item's square image by ref
	GetItemImage(ctx context.Context, ref string) ([]byte, error)

	// GetChampions returns every champion descriptor keyed by champion id
	GetChampions(ctx context.Context) (map[string]ChampionDescriptor, error)

	// GetChampion returns one champion descriptor, or shared.NotFoundError
	GetChampion(ctx context.Context, id string) (ChampionDescriptor, error)

	// GetChampionImage fetches a champion's square image by ref
	GetChampionImage(ctx context.Context, ref string) ([]byte, error)
}
