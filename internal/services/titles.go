package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

// ActionInitializeDefault is the source action recorded when the first
// achievement is granted to a new user.
const ActionInitializeDefault = "initialize_default"

// TitleService manages which titles a user holds and which one is equipped.
type TitleService struct {
	store         *store.Adapter
	catalog       Catalog
	ledger        *ledger
	notifications *NotificationService
	activity      *ActivityLog
	locks         *userLocks
	now           func() time.Time
}

// AvailableTitle is a catalog title with the user's standing on it.
type AvailableTitle struct {
	AchievementID string        `json:"achievement_id"`
	Title         string        `json:"title"`
	Icon          string        `json:"icon"`
	Rarity        models.Rarity `json:"rarity"`
	Unlocked      bool          `json:"unlocked"`
	Equipped      bool          `json:"equipped"`
}

func (t *TitleService) GetProfile(ctx context.Context, userID string) models.TitleProfile {
	p, _ := store.Get(ctx, t.store, store.TitleProfileKey(userID), models.TitleProfile{})
	p.Normalize()
	return p
}

// Equip sets the user's equipped title. A nil id unequips. Failed
// preconditions leave the profile untouched.
func (t *TitleService) Equip(ctx context.Context, userID string, achievementID *string) (models.TitleProfile, error) {
	unlock := t.locks.lock(userID)
	defer unlock()

	var def models.AchievementDefinition
	if achievementID != nil {
		var ok bool
		def, ok = t.catalog.Get(*achievementID)
		if !ok {
			return t.GetProfile(ctx, userID), fmt.Errorf("%w: %s", ErrUnknownAchievement, *achievementID)
		}
		if !def.HasTitle() {
			return t.GetProfile(ctx, userID), fmt.Errorf("%w: %s", ErrNoTitleReward, def.ID)
		}
		records, ok := store.Get(ctx, t.store, store.UnlocksKey(userID), []models.UnlockRecord{})
		if !ok {
			return t.GetProfile(ctx, userID), ErrStoreUnavailable
		}
		if !unlockedIDs(records)[def.ID] {
			return t.GetProfile(ctx, userID), fmt.Errorf("%w: %s", ErrNotUnlocked, def.ID)
		}
	}

	key := store.TitleProfileKey(userID)
	p, ok := store.Get(ctx, t.store, key, models.TitleProfile{})
	if !ok {
		return p, ErrStoreUnavailable
	}
	p.Normalize()

	if achievementID == nil {
		p.EquippedTitle, p.EquippedAchievementID = nil, nil
		if err := t.store.Save(ctx, key, p); err != nil {
			return p, err
		}
		t.activity.RecordActivity(ctx, userID, ActivityTitleUnequipped, "Unequipped title", "", "")
		return p, nil
	}

	if !p.HasTitle(def.Rewards.Title) {
		p.UnlockedTitles = append(p.UnlockedTitles, def.Rewards.Title)
	}
	title, id := def.Rewards.Title, def.ID
	p.EquippedTitle, p.EquippedAchievementID = &title, &id
	if err := t.store.Save(ctx, key, p); err != nil {
		return p, err
	}
	t.activity.RecordActivity(ctx, userID, ActivityTitleEquipped, fmt.Sprintf("Equipped %q", title), def.Title, def.Icon)
	return p, nil
}

// ListAvailable returns every title in the catalog: equipped first, then
// unlocked before locked, then by rarity from common up, then by title.
func (t *TitleService) ListAvailable(ctx context.Context, userID string) []AvailableTitle {
	p := t.GetProfile(ctx, userID)
	records, _ := store.Get(ctx, t.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	held := unlockedIDs(records)

	out := []AvailableTitle{}
	for _, def := range t.catalog.All() {
		if !def.HasTitle() {
			continue
		}
		out = append(out, AvailableTitle{
			AchievementID: def.ID,
			Title:         def.Rewards.Title,
			Icon:          def.Icon,
			Rarity:        def.Rarity,
			Unlocked:      held[def.ID] || p.HasTitle(def.Rewards.Title),
			Equipped:      p.EquippedAchievementID != nil && *p.EquippedAchievementID == def.ID,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Equipped != b.Equipped {
			return a.Equipped
		}
		if a.Unlocked != b.Unlocked {
			return a.Unlocked
		}
		if ra, rb := a.Rarity.Rank(), b.Rarity.Rank(); ra != rb {
			return ra < rb
		}
		return a.Title < b.Title
	})
	return out
}

// InitializeDefault grants the catalog's first achievement and equips its
// title. It does nothing when the user already has a title equipped.
func (t *TitleService) InitializeDefault(ctx context.Context, userID string) (models.TitleProfile, error) {
	unlock := t.locks.lock(userID)
	defer unlock()

	key := store.TitleProfileKey(userID)
	p, ok := store.Get(ctx, t.store, key, models.TitleProfile{})
	if !ok {
		return p, ErrStoreUnavailable
	}
	p.Normalize()

	records, ok := store.Get(ctx, t.store, store.UnlocksKey(userID), []models.UnlockRecord{})
	if !ok {
		return p, ErrStoreUnavailable
	}
	if p.EquippedTitle != nil {
		if backfillTitles(&p, records, t.catalog) {
			return p, t.store.Save(ctx, key, p)
		}
		return p, nil
	}

	first := t.catalog.First()

	if unlockedIDs(records)[first.ID] {
		if !first.HasTitle() {
			return p, nil
		}
		backfillTitles(&p, records, t.catalog)
		title, id := first.Rewards.Title, first.ID
		p.EquippedTitle, p.EquippedAchievementID = &title, &id
		return p, t.store.Save(ctx, key, p)
	}

	st, ok := store.Get[*models.UserStats](ctx, t.store, store.StatsKey(userID), nil)
	if !ok {
		return p, ErrStoreUnavailable
	}
	if st == nil {
		st = models.NewUserStats(userID)
	}
	st.UserID = userID
	st.Normalize()

	granted := t.ledger.commit(ctx, &grant{
		userID:  userID,
		records: records,
		stats:   st,
		defs:    []models.AchievementDefinition{first},
		action:  ActionInitializeDefault,
		equipID: first.ID,
	})
	if len(granted) > 0 {
		_ = t.notifications.enqueue(ctx, userID, granted, t.now())
	}
	return t.GetProfile(ctx, userID), nil
}
