package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UncategorizedID is the ID of the protected default category.
var UncategorizedID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// DeletionPolicy defines what happens to resources referencing a
// category when the category is deleted.
type DeletionPolicy string

const (
	// DeletionCascade deletes the referencing resource.
	DeletionCascade DeletionPolicy = "CASCADE"

	// DeletionSetDefault points the reference to the Uncategorized category.
	DeletionSetDefault DeletionPolicy = "SET_DEFAULT"
)

// categoryReferences lists all relationships that reference a category,
// each with the policy applied on category deletion.
//
// Plain expenses and budgets are deleted with their category. Recurring
// expenses outlive it and degrade to Uncategorized so that scheduled
// payments are never silently dropped.
var categoryReferences = []struct {
	policy DeletionPolicy
	apply  func(tx *gorm.DB, categoryID uuid.UUID) error
}{
	{
		DeletionCascade,
		func(tx *gorm.DB, categoryID uuid.UUID) error {
			return tx.Where("category_id = ?", categoryID).Delete(&Expense{}).Error
		},
	},
	{
		DeletionCascade,
		func(tx *gorm.DB, categoryID uuid.UUID) error {
			return tx.Where("category_id = ?", categoryID).Delete(&Budget{}).Error
		},
	},
	{
		DeletionSetDefault,
		func(tx *gorm.DB, categoryID uuid.UUID) error {
			// UpdateColumn skips the model hooks, they would reject the
			// empty destination struct
			return tx.Model(&RecurringExpense{}).Where("category_id = ?", categoryID).UpdateColumn("category_id", UncategorizedID).Error
		},
	},
}

// Category represents a category for expenses.
type Category struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Note string
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// BeforeDelete applies the deletion policy of every relationship that
// references the category.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	if c.ID == UncategorizedID {
		return ErrCategoryProtected
	}

	for _, reference := range categoryReferences {
		if err := reference.apply(tx, c.ID); err != nil {
			return err
		}
	}

	return nil
}
