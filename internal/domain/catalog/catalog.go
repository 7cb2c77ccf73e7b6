package catalog

// ItemDescriptor is a static item record from the catalog
type ItemDescriptor struct {
	ID          string
	Name        string
	Description string
	Plaintext   string
	ImageRef    string
	GoldTotal   int
	Tags        []string
}

// ChampionDescriptor is a static champion record from the catalog
type ChampionDescriptor struct {
	ID       string
	Key      string
	Name     string
	Title    string
	Blurb    string
	ImageRef string
	Tags     []string
}
