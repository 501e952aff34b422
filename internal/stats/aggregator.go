// Package stats folds user actions into UserStats snapshots.
package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
)

// Metadata keys read by the aggregator.
const (
	MetaRecipients     = "recipients"
	MetaRecipient      = "recipient"
	MetaRecipientCount = "recipient_count"
	MetaUserEmail      = "user_email"
	MetaSelfAddressed  = "self_addressed"
	MetaHasMedia       = "has_media"
	MetaMediaTypes     = "media_types"
	MetaMediaCount     = "media_count"
	MetaScheduleDays   = "schedule_days"
	MetaDeliveryDate   = "delivery_date"
	MetaTheme          = "theme"
	MetaLocalHour      = "local_hour"
	MetaLocalDate      = "local_date"
	MetaFilter         = "filter"
	MetaFilterName     = "filter_name"
	MetaMediaType      = "media_type"
	MetaSize           = "size"
	MetaBeneficiaries  = "beneficiaries"
	MetaFolderName     = "folder_name"
	MetaCount          = "count"
	MetaSenderID       = "sender_id"
	MetaSenderEmail    = "sender_email"
)

// Set bounds.
const (
	maxRecipientSet   = 1000
	maxEchoSenderSet  = 1000
	maxCreationDays   = 400
	maxDeliveryYears  = 200
	dailyCountHorizon = 60 // days of daily_capsule_counts kept
)

type Aggregator struct {
	now    func() time.Time
	logger *logger.Log
}

type Option func(*Aggregator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		now:    time.Now,
		logger: logger.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Update returns a new snapshot with action applied to prior. prior is not
// modified. Unknown actions return an unchanged copy. Update never fails: a
// panic while applying the action yields a freshly initialized record.
func (a *Aggregator) Update(prior *models.UserStats, action string, meta models.Metadata) (next *models.UserStats) {
	userID := ""
	if prior != nil {
		userID = prior.UserID
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error(fmt.Sprintf("stats update for %s/%s failed: %v", userID, action, r))
			next = models.NewUserStats(userID)
		}
	}()

	var s *models.UserStats
	if prior == nil {
		s = models.NewUserStats(userID)
	} else {
		s = prior.Clone()
	}

	now := a.now()
	if !a.apply(s, action, meta, now) {
		return s
	}
	s.UpdatedAt = &now
	return s
}

func (a *Aggregator) apply(s *models.UserStats, action string, meta models.Metadata, now time.Time) bool {
	switch action {
	case models.ActionCapsuleCreated:
		a.capsuleCreated(s, meta, now)
	case models.ActionFilterUsed:
		useFilter(s, meta, false)
	case models.ActionAudioFilterUsed:
		useFilter(s, meta, true)
	case models.ActionStickerAdded, models.ActionStickerUsed:
		s.StickersUsed++
		s.EnhancementsUsed++
	case models.ActionVisualEffectAdded:
		s.VisualEffectsUsed++
		s.EnhancementsUsed++
	case models.ActionEnhancementUsed:
		s.EnhancementsUsed++
	case models.ActionMediaUploaded:
		mediaUploaded(s, meta)
	case models.ActionLegacyVaultSetup:
		s.LegacyVaultConfigured = true
		if n := beneficiaryCount(meta); n > s.LegacyBeneficiaries {
			s.LegacyBeneficiaries = n
		}
	case models.ActionCapsuleEdited:
		s.CapsulesEdited++
	case models.ActionSocialShare:
		s.SocialShares++
	case models.ActionVaultFolderCreated:
		s.VaultFoldersCreated++
		if name := normalizeKey(meta.String(MetaFolderName)); name != "" && !isSystemFolder(name) {
			s.CustomVaultFolders++
		}
	case models.ActionVaultMediaOrganized:
		n, ok := meta.Int(MetaCount)
		if !ok || n < 1 {
			n = 1
		}
		s.VaultMediaOrganized += n
	case models.ActionEchoSent:
		s.EchoesSent++
	case models.ActionEchoReceived:
		s.EchoesReceived++
		sender := meta.String(MetaSenderID)
		if sender == "" {
			sender = meta.String(MetaSenderEmail)
		}
		if id := normalizeIdentity(sender); id != "" {
			s.UniqueEchoSenders = addString(s.UniqueEchoSenders, hashIdentity(id), maxEchoSenderSet)
		}
	case models.ActionMultiRecipientCapsule:
		multiRecipient(s, meta)
	default:
		return false
	}
	return true
}

func (a *Aggregator) capsuleCreated(s *models.UserStats, meta models.Metadata, now time.Time) {
	s.CapsulesCreated++

	today := localDate(meta, now)
	day, _ := time.Parse(dateLayout, today)

	s.CurrentStreak, s.LastActivityDate = advanceStreak(s.CurrentStreak, s.LastActivityDate, today)
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	if s.FirstCapsuleAt == nil {
		first := now
		s.FirstCapsuleAt = &first
	}
	last := now
	s.LastCapsuleAt = &last

	if days, ok := scheduleDays(meta, today); ok {
		if days > s.MaxScheduleDays {
			s.MaxScheduleDays = days
		}
		if s.MinScheduleDays == nil || days < *s.MinScheduleDays {
			d := days
			s.MinScheduleDays = &d
		}
	}
	if year, ok := deliveryYear(meta); ok {
		s.DeliveryYears = addInt(s.DeliveryYears, year, maxDeliveryYears)
	}

	if hour, ok := localHour(meta); ok {
		if hour <= 3 {
			s.NightOwlCapsules++
		}
		if hour == 0 {
			s.MidnightCapsules++
		}
		if hour == 5 || hour == 6 {
			s.EarlyBirdCapsules++
		}
		s.HourlyCapsuleCounts[strconv.Itoa(hour)]++
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		s.WeekendCapsules++
	}

	recordRecipients(s, meta)

	s.CreationDaySet = addDay(s.CreationDaySet, today)
	s.ActiveYears = addInt(s.ActiveYears, day.Year(), maxDeliveryYears)
	s.DailyCapsuleCounts[today]++
	pruneDailyCounts(s.DailyCapsuleCounts, day)

	if hasMedia(meta) {
		s.CapsulesWithMedia++
		s.MediaCapsuleStreak, s.LastMediaCapsuleDate = advanceStreak(s.MediaCapsuleStreak, s.LastMediaCapsuleDate, today)
		if s.MediaCapsuleStreak > s.LongestMediaCapsuleStreak {
			s.LongestMediaCapsuleStreak = s.MediaCapsuleStreak
		}
	} else {
		s.MediaCapsuleStreak = 0
	}

	s.MonthlyStreak, s.LastActiveMonth = advanceMonthly(s.MonthlyStreak, s.LastActiveMonth, today[:7])

	if theme := normalizeKey(meta.String(MetaTheme)); theme != "" {
		s.ThemesUsed[theme]++
	}
}

// recordRecipients classifies the capsule as self-addressed and/or sent to
// others, and adds other recipients to the unique set.
func recordRecipients(s *models.UserStats, meta models.Metadata) {
	recipients := meta.Strings(MetaRecipients)
	if len(recipients) == 0 {
		recipients = meta.Strings(MetaRecipient)
	}
	owner := normalizeIdentity(meta.String(MetaUserEmail))

	self := meta.Bool(MetaSelfAddressed)
	others := 0
	seen := map[string]bool{}
	for _, r := range recipients {
		id := normalizeIdentity(r)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if id == "self" || (owner != "" && id == owner) {
			self = true
			continue
		}
		others++
		s.UniqueRecipientEmails = addString(s.UniqueRecipientEmails, hashIdentity(id), maxRecipientSet)
	}

	if self {
		s.SelfCapsules++
	}
	if others > 0 {
		s.CapsulesToOthers++
	}
	if others > s.MaxRecipients {
		s.MaxRecipients = others
	}
}

func useFilter(s *models.UserStats, meta models.Metadata, audio bool) {
	name := meta.String(MetaFilter)
	if name == "" {
		name = meta.String(MetaFilterName)
	}
	key, known := filterKey(name, audio)
	if !known {
		return
	}
	s.FilterUsage[key]++
	s.EnhancementsUsed++
	if audio {
		s.AudioFiltersUsed++
	} else {
		s.VisualFiltersUsed++
	}
}

func mediaUploaded(s *models.UserStats, meta models.Metadata) {
	s.MediaUploaded++
	if t := mediaType(meta.String(MetaMediaType)); t != "" {
		s.MediaByType[t]++
	}
	if size, ok := meta.Float(MetaSize); ok && size > 0 {
		s.TotalMediaSize += int64(size)
	}
}

func multiRecipient(s *models.UserStats, meta models.Metadata) {
	s.MultiRecipientCapsules++
	n, ok := meta.Int(MetaRecipientCount)
	if !ok {
		n = len(meta.Strings(MetaRecipients))
	}
	if n > s.MaxRecipients {
		s.MaxRecipients = n
	}
	for _, m := range models.RecipientMilestones {
		if n >= m {
			s.RecipientMilestones[strconv.Itoa(m)]++
		}
	}
}

func beneficiaryCount(meta models.Metadata) int {
	if n, ok := meta.Int(MetaBeneficiaries); ok {
		return n
	}
	return len(meta.Strings(MetaBeneficiaries))
}

func hasMedia(meta models.Metadata) bool {
	if meta.Bool(MetaHasMedia) || len(meta.Strings(MetaMediaTypes)) > 0 {
		return true
	}
	n, ok := meta.Int(MetaMediaCount)
	return ok && n > 0
}

func localHour(meta models.Metadata) (int, bool) {
	hour, ok := meta.Int(MetaLocalHour)
	if !ok || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
