package persistence

// Database models mirroring the logical store layout:
// players/{id}/{power}, players/{id}/inventory/{itemId}/count,
// players/{id}/glossary, trade_requests/{counterparty}/{proposer},
// players/{id}/trades/{other}, friend_requests/{recipient}/{sender},
// players/{id}/friends/{friend}.

// PlayerModel is the players table
type PlayerModel struct {
	ID    string `gorm:"primaryKey;column:id"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email;uniqueIndex"`
	Power int    `gorm:"column:power"`
}

// TableName specifies the table name for GORM
func (PlayerModel) TableName() string {
	return "players"
}

// InventoryItemModel is one item stack of one player. Rows are deleted
// when their count reaches zero, never kept at zero.
type InventoryItemModel struct {
	PlayerID string `gorm:"primaryKey;column:player_id"`
	ItemID   string `gorm:"primaryKey;column:item_id"`
	Count    int    `gorm:"column:count"`
}

// TableName specifies the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// GlossaryEntryModel is one discovered name. The (player, name) unique
// index makes discovery idempotent.
type GlossaryEntryModel struct {
	ID       string `gorm:"primaryKey;column:id"`
	PlayerID string `gorm:"column:player_id;uniqueIndex:idx_glossary_player_name"`
	Name     string `gorm:"column:name;uniqueIndex:idx_glossary_player_name"`
}

// TableName specifies the table name for GORM
func (GlossaryEntryModel) TableName() string {
	return "glossary_entries"
}

// TradeOfferModel is a pending offer keyed by (counterparty, proposer);
// at most one outstanding offer per ordered pair
type TradeOfferModel struct {
	CounterpartyID  string  `gorm:"primaryKey;column:counterparty_id"`
	ProposerID      string  `gorm:"primaryKey;column:proposer_id"`
	OfferedItemID   string  `gorm:"column:offered_item_id"`
	RequestedItemID string  `gorm:"column:requested_item_id"`
	Lat             float64 `gorm:"column:lat"`
	Lng             float64 `gorm:"column:lng"`
	MeetingDate     string  `gorm:"column:meeting_date"`
	MeetingTime     string  `gorm:"column:meeting_time"`
}

// TableName specifies the table name for GORM
func (TradeOfferModel) TableName() string {
	return "trade_offers"
}

// ActiveTradeModel is one participant's mirror of an accepted trade
type ActiveTradeModel struct {
	OwnerID     string  `gorm:"primaryKey;column:owner_id"`
	OtherID     string  `gorm:"primaryKey;column:other_id"`
	SendItemID  string  `gorm:"column:send_item_id"`
	GetItemID   string  `gorm:"column:get_item_id"`
	Lat         float64 `gorm:"column:lat"`
	Lng         float64 `gorm:"column:lng"`
	MeetingDate string  `gorm:"column:meeting_date"`
	MeetingTime string  `gorm:"column:meeting_time"`
}

// TableName specifies the table name for GORM
func (ActiveTradeModel) TableName() string {
	return "active_trades"
}

// FriendModel is one direction of a friendship; edges are always written
// and removed in pairs
type FriendModel struct {
	PlayerID string `gorm:"primaryKey;column:player_id"`
	FriendID string `gorm:"primaryKey;column:friend_id"`
}

// TableName specifies the table name for GORM
func (FriendModel) TableName() string {
	return "friends"
}

// FriendRequestModel is a pending friend request
type FriendRequestModel struct {
	RecipientID string `gorm:"primaryKey;column:recipient_id"`
	SenderID    string `gorm:"primaryKey;column:sender_id"`
}

// TableName specifies the table name for GORM
func (FriendRequestModel) TableName() string {
	return "friend_requests"
}
