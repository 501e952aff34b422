package models

// Action names the aggregator understands. The vocabulary is open: any other
// name is accepted and changes nothing.
const (
	ActionCapsuleCreated        = "capsule_created"
	ActionFilterUsed            = "filter_used"
	ActionAudioFilterUsed       = "audio_filter_used"
	ActionStickerAdded          = "sticker_added"
	ActionStickerUsed           = "sticker_used"
	ActionVisualEffectAdded     = "visual_effect_added"
	ActionEnhancementUsed       = "enhancement_used"
	ActionMediaUploaded         = "media_uploaded"
	ActionLegacyVaultSetup      = "legacy_vault_setup"
	ActionCapsuleEdited         = "capsule_edited"
	ActionSocialShare           = "social_share"
	ActionVaultFolderCreated    = "vault_folder_created"
	ActionVaultMediaOrganized   = "vault_media_organized"
	ActionEchoSent              = "echo_sent"
	ActionEchoReceived          = "echo_received"
	ActionMultiRecipientCapsule = "multi_recipient_capsule"

	// ActionRetroactiveCheck is the synthetic action of a retroactive pass.
	ActionRetroactiveCheck = "retroactive_check"
)

// MediaTypes are the buckets of media_by_type.
var MediaTypes = []string{"photo", "video", "audio", "document"}

// Themes are the capsule themes a user can pick.
var Themes = []string{
	"retro_70s",
	"disco_80s",
	"grunge_90s",
	"y2k",
	"vintage_postcard",
	"cosmic",
	"future",
	"modern",
}

// VisualFilters and AudioFilters are the known filter_usage buckets. Audio
// filters are stored under an "audio_" prefix.
var VisualFilters = []string{
	"vintage",
	"black_white",
	"sepia",
	"vhs",
	"film_grain",
	"polaroid",
	"neon",
	"dreamy",
	"golden_hour",
	"cinematic",
}

var AudioFilters = []string{
	"audio_reverb",
	"audio_echo",
	"audio_radio",
	"audio_robot",
	"audio_deep_voice",
	"audio_chipmunk",
	"audio_vinyl",
	"audio_cassette",
}

// SystemFolders are created for every vault and never count as custom folders.
var SystemFolders = []string{"photos", "videos", "audio", "documents"}

// RecipientMilestones are the recipient-count buckets tracked for
// multi-recipient capsules.
var RecipientMilestones = []int{3, 5, 10, 25}
