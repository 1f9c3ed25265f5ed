package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Yassin6up/somoo-sub001/models"
)

// PackageSpec is a fixed-price campaign package.
type PackageSpec struct {
	Price      decimal.Decimal
	TasksCount int
}

// Packages returns the sellable campaign packages.
func Packages() map[string]PackageSpec {
	return map[string]PackageSpec{
		models.PackageBasic:  {Price: decimal.NewFromInt(300), TasksCount: 20},
		models.PackagePro:    {Price: decimal.NewFromInt(750), TasksCount: 60},
		models.PackageGrowth: {Price: decimal.NewFromInt(1500), TasksCount: 150},
	}
}

// CreateCampaign buys a package for a product owner and generates its tasks
// immediately, open to any freelancer.
func CreateCampaign(db *gorm.DB, ownerID uint, title, description, packageType, targetCountry string) (models.Campaign, error) {
	spec, ok := Packages()[packageType]
	if !ok {
		return models.Campaign{}, validationf("باقة غير معروفة: %s", packageType)
	}
	if title == "" {
		return models.Campaign{}, validationf("عنوان الحملة مطلوب")
	}

	var out models.Campaign
	err := db.Transaction(func(tx *gorm.DB) error {
		setting, err := models.GetSetting(tx)
		if err != nil {
			return err
		}
		breakdown, err := SplitBudget(spec.Price, spec.TasksCount, CampaignRates(setting))
		if err != nil {
			return err
		}

		campaign := models.Campaign{
			OwnerID:       ownerID,
			Title:         title,
			Description:   description,
			PackageType:   packageType,
			Price:         spec.Price,
			TasksCount:    spec.TasksCount,
			TargetCountry: targetCountry,
			Status:        models.CampaignStatusActive,
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		perFee := splitPerTask(breakdown.PlatformFee, spec.TasksCount)
		tasks := make([]models.Task, 0, spec.TasksCount)
		for i := 1; i <= spec.TasksCount; i++ {
			cid := campaign.ID
			tasks = append(tasks, models.Task{
				CampaignID:  &cid,
				Title:       fmt.Sprintf("%s (%d/%d)", title, i, spec.TasksCount),
				Description: description,
				Reward:      breakdown.RewardPerMember.Add(perFee),
				PlatformFee: perFee,
				NetReward:   breakdown.RewardPerMember,
				Status:      models.TaskStatusAvailable,
			})
		}
		if err := tx.CreateInBatches(&tasks, 50).Error; err != nil {
			return err
		}
		out = campaign
		return nil
	})
	return out, err
}
