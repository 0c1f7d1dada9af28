package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// groupService handles group-related business logic.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

// Create persists a new group with the creator as its sole initial member.
func (s *groupService) Create(name, description string, creatorID uint) (*models.Group, error) {
	var creator models.User
	if err := s.db.First(&creator, creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedDate: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Model(group).Association("Members").Append(&creator)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

// GetUserGroups returns every group the user is a member of.
func (s *groupService) GetUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// GetByID retrieves a group with its members. The actor must be a member.
func (s *groupService) GetByID(groupID, actorID uint) (*models.Group, error) {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}
	return group, nil
}

// AddMembers adds users to a group. The actor must already be a member, and
// every target user must exist. Membership is deduplicated by the join
// table's composite key, so re-adding an existing member is a no-op.
func (s *groupService) AddMembers(groupID uint, userIDs []uint, actorID uint) (*models.Group, error) {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user IDs are required")
	}

	var users []models.User
	if err := s.db.Find(&users, userIDs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(users) != len(userIDs) {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.db.Model(group).Association("Members").Append(&users); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.loadGroup(groupID)
}

// AddExpense records an expense against a group, paid by the actor. When no
// split map is supplied, the amount is divided equally across the current
// members: each share is amount/N rounded half-up to two decimal places. The
// rounding drift on the total (up to N*0.005) is not redistributed.
func (s *groupService) AddExpense(
	groupID, actorID uint,
	title, description string,
	amount decimal.Decimal,
	date time.Time,
	category, paymentMethod string,
	splits map[uint]decimal.Decimal,
) (*models.Expense, error) {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	if len(splits) == 0 {
		memberCount := len(group.Members)
		if memberCount == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group has no members to split with")
		}
		share := amount.Div(decimal.NewFromInt(int64(memberCount))).Round(2)
		splits = make(map[uint]decimal.Decimal, memberCount)
		for _, member := range group.Members {
			splits[member.ID] = share
		}
	}

	expense := &models.Expense{
		UserID:        actorID,
		GroupID:       &group.ID,
		Title:         title,
		Description:   description,
		Amount:        amount,
		Date:          dateOnly(date),
		Category:      category,
		PaymentMethod: paymentMethod,
		ExpenseType:   models.ExpenseTypePersonal,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		for userID, share := range splits {
			split := models.ExpenseSplit{
				ExpenseID: expense.ID,
				UserID:    userID,
				Amount:    share,
			}
			if err := tx.Create(&split).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Summary aggregates a group's expenses: the overall total, each member's
// accumulated share by username, and member/expense counts. Currency values
// are formatted with the currency symbol prefix.
func (s *groupService) Summary(groupID, actorID uint) (*GroupSummary, error) {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.db.Preload("Splits").Where("group_id = ?", groupID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	usernames := make(map[uint]string, len(group.Members))
	memberTotals := make(map[string]decimal.Decimal, len(group.Members))
	for _, member := range group.Members {
		usernames[member.ID] = member.Username
		memberTotals[member.Username] = decimal.Zero
	}

	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
		for _, split := range expense.Splits {
			username, ok := usernames[split.UserID]
			if !ok {
				// Split owner has since left or been deleted; skip.
				continue
			}
			memberTotals[username] = memberTotals[username].Add(split.Amount)
		}
	}

	shares := make(map[string]string, len(memberTotals))
	for username, amount := range memberTotals {
		shares[username] = currencySymbol + amount.StringFixed(2)
	}

	return &GroupSummary{
		GroupID:       group.ID,
		GroupName:     group.Name,
		TotalExpenses: currencySymbol + total.StringFixed(2),
		MemberCount:   len(group.Members),
		ExpenseCount:  len(expenses),
		MemberShares:  shares,
	}, nil
}

// Update overwrites a group's name and description. The actor must be a member.
func (s *groupService) Update(groupID, actorID uint, name, description string) (*models.Group, error) {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        name,
		"description": description,
	}
	if err := s.db.Model(group).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

// Delete removes a group. Membership rows go with it; the group's expenses
// survive as personal records with their group link and split rows cleared.
func (s *groupService) Delete(groupID, actorID uint) error {
	group, err := s.loadGroup(groupID)
	if err != nil {
		return err
	}
	if err := s.requireMember(groupID, actorID); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
			groupID,
		).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Expense{}).
			Where("group_id = ?", groupID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(group).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// loadGroup fetches a group with its members preloaded.
func (s *groupService) loadGroup(groupID uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.Preload("Members").First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// requireMember returns ErrNotGroupMember unless the user belongs to the group.
func (s *groupService) requireMember(groupID, userID uint) error {
	var count int64
	err := s.db.Table("group_members").
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrNotGroupMember
	}
	return nil
}
