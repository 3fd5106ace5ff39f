package repositories

import (
	"context"

	"gorm.io/gorm"
)

// exists reports whether a row of model has column = value, ignoring the row with excludeID.
func exists(ctx context.Context, db *gorm.DB, model interface{}, column, value string, excludeID uint) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func paginate(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
