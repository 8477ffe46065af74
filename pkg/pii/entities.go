package pii

import "regexp"

// Entity identifies one family of personally identifying patterns.
type Entity string

const (
	Email      Entity = "email"
	Phone      Entity = "phone"
	SSN        Entity = "ssn"
	CreditCard Entity = "credit_card"
	ZipCode    Entity = "zip_code"
	IPAddress  Entity = "ip_address"
)

var entityPatterns = map[Entity]*regexp.Regexp{
	Email:      regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	Phone:      regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	SSN:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	CreditCard: regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
	ZipCode:    regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
	IPAddress:  regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
}

// entityOrder is the fixed scrub order. Numeric patterns run before ZipCode so
// a grouped card or SSN is never partially eaten as a 5-digit ZIP match.
var entityOrder = []Entity{
	Email,
	Phone,
	SSN,
	CreditCard,
	ZipCode,
	IPAddress,
}

var entityMasks = map[Entity]string{
	Email:      "[EMAIL]",
	Phone:      "[PHONE]",
	SSN:        "[SSN]",
	CreditCard: "[CARD]",
	ZipCode:    "[ZIP]",
	IPAddress:  "[IP]",
}

// Entities returns the supported entity families in scrub order.
func Entities() []Entity {
	out := make([]Entity, len(entityOrder))
	copy(out, entityOrder)
	return out
}

// Mask returns the literal tag an entity is replaced with.
func Mask(entity Entity) string {
	return entityMasks[entity]
}
