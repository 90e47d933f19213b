package document

import "gorm.io/gorm"

func collectionScope(collection string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("collection = ?", collection)
	}
}

// ownerScope is a no-op for an empty owner so admin-side listings can reuse
// the same query.
func ownerScope(ownerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == "" {
			return db
		}
		return db.Where("owner_id = ?", ownerID)
	}
}
