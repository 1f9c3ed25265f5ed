package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yassin6up/somoo-sub001/models"
)

// newTestDB opens a fresh in-memory database per test. The shared cache keeps
// the schema alive across the connections gorm pools.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletCredit{},
		&models.Group{},
		&models.GroupMember{},
		&models.Project{},
		&models.Campaign{},
		&models.Task{},
		&models.TaskReview{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Notification{},
		&models.Setting{},
	))
	_, err = models.GetSetting(db)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "x",
		Role:     role,
		Status:   "Active",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// createGroupWith creates a group led by leader with the given extra members.
func createGroupWith(t *testing.T, db *gorm.DB, leader models.User, members ...models.User) models.Group {
	t.Helper()
	grp, err := CreateGroup(db, leader.ID, leader.Name+"'s team", "", 20)
	require.NoError(t, err)
	for _, m := range members {
		grp, err = JoinGroup(db, grp.ID, m.ID)
		require.NoError(t, err)
	}
	return grp
}

// submittedProjectTask walks a freshly accepted project's first task through
// accept -> start -> submit by the given freelancer and returns it.
func submittedProjectTask(t *testing.T, db *gorm.DB, projectID uint, freelancer models.User) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, db.Where("project_id = ? AND status = ?", projectID, models.TaskStatusAvailable).
		Order("id").First(&task).Error)

	task, err := AcceptTask(db, task.ID, freelancer.ID)
	require.NoError(t, err)
	task, err = StartTask(db, task.ID, freelancer.ID)
	require.NoError(t, err)
	task, err = SubmitTask(db, task.ID, freelancer.ID, "screenshots attached", "https://cdn.example.com/proof.png")
	require.NoError(t, err)
	return task
}

// acceptedProject creates a pending project for owner and has leader's group
// accept it.
func acceptedProject(t *testing.T, db *gorm.DB, owner, leader models.User, budget string, tasksCount int) models.Project {
	t.Helper()
	project := models.Project{
		OwnerID:    owner.ID,
		Title:      "App store reviews",
		Budget:     mustDecimal(t, budget),
		TasksCount: tasksCount,
		Status:     models.ProjectStatusPending,
	}
	require.NoError(t, db.Create(&project).Error)

	project, err := AcceptProject(db, project.ID, leader.ID)
	require.NoError(t, err)
	return project
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func walletOf(t *testing.T, db *gorm.DB, userID uint) models.Wallet {
	t.Helper()
	w, err := GetOrCreateWallet(db, userID)
	require.NoError(t, err)
	return w
}

// fundWallet puts a withdrawable balance on a user's wallet directly.
func fundWallet(t *testing.T, db *gorm.DB, userID uint, balance string) models.Wallet {
	t.Helper()
	w := walletOf(t, db, userID)
	amt := mustDecimal(t, balance)
	require.NoError(t, db.Model(&w).Updates(map[string]interface{}{
		"balance":      amt,
		"total_earned": amt,
	}).Error)
	return walletOf(t, db, userID)
}

func backdateCredits(t *testing.T, db *gorm.DB, walletID uint, to time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.WalletCredit{}).
		Where("wallet_id = ?", walletID).
		Update("available_at", to).Error)
}
