package stats

import (
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tahcohcat/capsule-achievements/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var (
	visualFilterSet = toSet(models.VisualFilters)
	audioFilterSet  = toSet(models.AudioFilters)
	systemFolderSet = toSet(models.SystemFolders)

	keyReplacer = strings.NewReplacer("-", "_", " ", "_")

	mediaAliases = map[string]string{
		"photo":    "photo",
		"image":    "photo",
		"picture":  "photo",
		"video":    "video",
		"movie":    "video",
		"audio":    "audio",
		"voice":    "audio",
		"sound":    "audio",
		"document": "document",
		"doc":      "document",
		"pdf":      "document",
		"file":     "document",
	}
)

// normalizeKey folds a caller-supplied label into bucket form:
// NFKC, case folded, spaces and hyphens as underscores.
func normalizeKey(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if s == "" {
		return ""
	}
	// Casers carry state; one per call.
	s = cases.Fold().String(s)
	return keyReplacer.Replace(s)
}

// normalizeIdentity prepares an email or id for set membership.
func normalizeIdentity(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// hashIdentity keeps recipient and sender sets free of raw addresses.
func hashIdentity(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:16])
}

func filterKey(raw string, audio bool) (string, bool) {
	key := normalizeKey(raw)
	if key == "" {
		return "", false
	}
	if audio {
		key = "audio_" + strings.TrimPrefix(key, "audio_")
		return key, audioFilterSet[key]
	}
	return key, visualFilterSet[key]
}

func mediaType(raw string) string {
	key := normalizeKey(raw)
	if key == "" {
		return ""
	}
	if t, ok := mediaAliases[key]; ok {
		return t
	}
	// image/png style MIME types
	if major, _, found := strings.Cut(key, "/"); found {
		if t, ok := mediaAliases[major]; ok {
			return t
		}
		if major == "application" || major == "text" {
			return "document"
		}
	}
	return ""
}

func isSystemFolder(name string) bool {
	return systemFolderSet[name]
}

// localDate is the caller's calendar day, or the clock's UTC day when the
// caller sent none or sent garbage.
func localDate(meta models.Metadata, now time.Time) string {
	if d := strings.TrimSpace(meta.String(MetaLocalDate)); d != "" {
		if t, err := time.Parse(dateLayout, d); err == nil {
			return t.Format(dateLayout)
		}
	}
	return now.UTC().Format(dateLayout)
}

// daysBetween returns to minus from in whole calendar days.
func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(dateLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(dateLayout, to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// advanceStreak applies one active day to a daily streak. A repeat of the
// last day keeps the streak, the next day extends it, a gap restarts it.
// A day earlier than the last one recorded leaves everything unchanged.
func advanceStreak(current int, last, today string) (int, string) {
	d, ok := daysBetween(last, today)
	switch {
	case !ok:
		return 1, today
	case d < 0:
		return current, last
	case d == 0:
		return max(current, 1), last
	case d == 1:
		return current + 1, today
	default:
		return 1, today
	}
}

func advanceMonthly(current int, last, month string) (int, string) {
	a, errA := time.Parse(monthLayout, last)
	b, errB := time.Parse(monthLayout, month)
	if errB != nil {
		return current, last
	}
	if errA != nil {
		return 1, month
	}
	d := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	switch {
	case d < 0:
		return current, last
	case d == 0:
		return max(current, 1), last
	case d == 1:
		return current + 1, month
	default:
		return 1, month
	}
}

// scheduleDays is the capsule's lead time: schedule_days when given,
// otherwise the days from today until delivery_date.
func scheduleDays(meta models.Metadata, today string) (int, bool) {
	if n, ok := meta.Int(MetaScheduleDays); ok {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	delivery, ok := parseDelivery(meta.String(MetaDeliveryDate))
	if !ok {
		return 0, false
	}
	d, ok := daysBetween(today, delivery.Format(dateLayout))
	if !ok || d < 0 {
		return 0, false
	}
	return d, true
}

func deliveryYear(meta models.Metadata) (int, bool) {
	delivery, ok := parseDelivery(meta.String(MetaDeliveryDate))
	if !ok {
		return 0, false
	}
	return delivery.Year(), true
}

func parseDelivery(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// addString adds v to a set kept as a slice. Once the set holds limit
// entries new values are dropped.
func addString(set []string, v string, limit int) []string {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	if len(set) >= limit {
		return set
	}
	return append(set, v)
}

func addInt(set []int, v, limit int) []int {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	if len(set) >= limit {
		return set
	}
	set = append(set, v)
	sort.Ints(set)
	return set
}

// addDay keeps the creation day set sorted and drops the oldest days past
// maxCreationDays.
func addDay(set []string, day string) []string {
	i := sort.SearchStrings(set, day)
	if i < len(set) && set[i] == day {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = day
	if over := len(set) - maxCreationDays; over > 0 {
		set = append([]string(nil), set[over:]...)
	}
	return set
}

func pruneDailyCounts(counts map[string]int, today time.Time) {
	if today.IsZero() {
		return
	}
	cutoff := today.AddDate(0, 0, -dailyCountHorizon).Format(dateLayout)
	for day := range counts {
		if day < cutoff {
			delete(counts, day)
		}
	}
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
