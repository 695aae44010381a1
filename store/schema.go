package store

import "fmt"

// DynamoDB schema constants for single-table design
const (
	// Table attributes
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "entity_type"
	AttrValue      = "value"
	AttrUpdatedAt  = "updated_at"

	// Entity types
	EntityTypeKeyValue = "KeyValue"
)

// KeyValue keys: PK=KV#{key}, SK=VALUE
func keyValuePK(key string) string {
	return fmt.Sprintf("KV#%s", key)
}

func keyValueSK() string {
	return "VALUE"
}
