package model

// Item is owned by the item-tracking side; this service only reads it.
type Item struct {
	ID         int
	ReportedBy int
	Title      string
}
