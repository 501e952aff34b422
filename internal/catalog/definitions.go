package catalog

import (
	"github.com/tahcohcat/capsule-achievements/internal/models"
)

const (
	common    = models.RarityCommon
	uncommon  = models.RarityUncommon
	rare      = models.RarityRare
	epic      = models.RarityEpic
	legendary = models.RarityLegendary

	gib = 1 << 30
)

func count(stat string, threshold float64) models.Criteria {
	return models.CountCriteria{Stat: stat, Threshold: threshold, Operator: models.OpGTE}
}

func countOp(stat string, op models.Operator, threshold float64) models.Criteria {
	return models.CountCriteria{Stat: stat, Threshold: threshold, Operator: op}
}

func streak(days int) models.Criteria {
	return models.StreakCriteria{Threshold: days}
}

func wait(days int) models.Criteria {
	return models.TimeWaitCriteria{Days: days}
}

func action(name, predicate string) models.Criteria {
	return models.SpecificActionCriteria{Action: name, Predicate: predicate}
}

func combo(conds ...models.Condition) models.Criteria {
	return models.ComboCriteria{Conditions: conds}
}

func cond(stat string, threshold float64) models.Condition {
	return models.Condition{Stat: stat, Threshold: threshold, Operator: models.OpGTE}
}

func custom(validator string) models.Criteria {
	return models.CustomCriteria{Validator: validator}
}

func reward(points int) models.Reward { return models.Reward{Points: points} }

func titled(points int, title string) models.Reward {
	return models.Reward{Points: points, Title: title}
}

func definitions() []models.AchievementDefinition {
	var defs []models.AchievementDefinition
	add := func(cat models.Category, entries ...models.AchievementDefinition) {
		for _, e := range entries {
			e.Category = cat
			defs = append(defs, e)
		}
	}

	add(models.CategoryStarter,
		models.AchievementDefinition{ID: FirstAchievementID, Title: "First Step", Description: "Create your first time capsule", Rarity: common, Icon: "🌱",
			UnlockCriteria: count("capsules_created", 1), Rewards: titled(10, "Time Novice")},
		models.AchievementDefinition{ID: "first_media", Title: "Picture Perfect", Description: "Upload your first piece of media", Rarity: common, Icon: "📸",
			UnlockCriteria: count("media_uploaded", 1), Rewards: reward(10)},
		models.AchievementDefinition{ID: "first_echo", Title: "Hello, Echo", Description: "Leave your first echo on a delivered capsule", Rarity: common, Icon: "💬",
			UnlockCriteria: action(models.ActionEchoSent, ""), Rewards: reward(10)},
		models.AchievementDefinition{ID: "first_enhancement", Title: "A Little Sparkle", Description: "Enhance a capsule for the first time", Rarity: common, Icon: "✨",
			UnlockCriteria: count("enhancements_used", 1), Rewards: reward(10)},
		models.AchievementDefinition{ID: "first_recipient", Title: "Special Delivery", Description: "Send a capsule to someone else", Rarity: common, Icon: "💌",
			UnlockCriteria: count("capsules_to_others", 1), Rewards: reward(10)},
		models.AchievementDefinition{ID: "note_to_self", Title: "Note to Self", Description: "Send a capsule to your future self", Rarity: common, Icon: "🪞",
			UnlockCriteria: action(models.ActionCapsuleCreated, "self_addressed"), Rewards: reward(10)},
		models.AchievementDefinition{ID: "first_edit", Title: "Second Thoughts", Description: "Edit a capsule before it is delivered", Rarity: common, Icon: "✏️",
			UnlockCriteria: action(models.ActionCapsuleEdited, "first_edit"), Rewards: reward(10)},
		models.AchievementDefinition{ID: "first_folder", Title: "Filing Begins", Description: "Create a folder in your vault", Rarity: common, Icon: "📁",
			UnlockCriteria: count("vault_folders_created", 1), Rewards: reward(10)},
	)

	add(models.CategoryEraThemed,
		models.AchievementDefinition{ID: "era_retro_70s", Title: "Groovy", Description: "Create a capsule with the 70s theme", Rarity: common, Icon: "🕺",
			UnlockCriteria: count("themes_used.retro_70s", 1), Rewards: reward(15)},
		models.AchievementDefinition{ID: "era_disco_80s", Title: "Neon Nights", Description: "Create a capsule with the 80s theme", Rarity: common, Icon: "📼",
			UnlockCriteria: count("themes_used.disco_80s", 1), Rewards: reward(15)},
		models.AchievementDefinition{ID: "era_grunge_90s", Title: "Flannel Forever", Description: "Create a capsule with the 90s theme", Rarity: common, Icon: "🎸",
			UnlockCriteria: count("themes_used.grunge_90s", 1), Rewards: reward(15)},
		models.AchievementDefinition{ID: "era_y2k", Title: "Millennium Bug", Description: "Create a capsule with the Y2K theme", Rarity: common, Icon: "💿",
			UnlockCriteria: count("themes_used.y2k", 1), Rewards: reward(15)},
		models.AchievementDefinition{ID: "era_postcard", Title: "Wish You Were Here", Description: "Create a capsule with the vintage postcard theme", Rarity: common, Icon: "🏞️",
			UnlockCriteria: count("themes_used.vintage_postcard", 1), Rewards: reward(15)},
		models.AchievementDefinition{ID: "era_cosmic", Title: "Stardust", Description: "Create a capsule with the cosmic theme", Rarity: uncommon, Icon: "🌌",
			UnlockCriteria: count("themes_used.cosmic", 1), Rewards: reward(20)},
		models.AchievementDefinition{ID: "era_future", Title: "Tomorrowland", Description: "Create a capsule with the future theme", Rarity: uncommon, Icon: "🚀",
			UnlockCriteria: count("themes_used.future", 1), Rewards: reward(20)},
		models.AchievementDefinition{ID: "era_explorer", Title: "Era Explorer", Description: "Use four different capsule themes", Rarity: rare, Icon: "🧭",
			UnlockCriteria: count("distinct_themes", 4), Rewards: titled(50, "Era Explorer")},
		models.AchievementDefinition{ID: "era_master", Title: "Era Master", Description: "Use every capsule theme at least once", Rarity: legendary, Icon: "👑",
			UnlockCriteria: custom("all_themes_used"), Rewards: titled(200, "Master of Eras")},
	)

	add(models.CategoryTimeBased,
		models.AchievementDefinition{ID: "month_ahead", Title: "Month Ahead", Description: "Schedule a capsule 30 days out", Rarity: common, Icon: "📅",
			UnlockCriteria: wait(30), Rewards: reward(15)},
		models.AchievementDefinition{ID: "half_year_ahead", Title: "Half a Year", Description: "Schedule a capsule six months out", Rarity: uncommon, Icon: "🗓️",
			UnlockCriteria: wait(180), Rewards: reward(25)},
		models.AchievementDefinition{ID: "year_ahead", Title: "Patient Planner", Description: "Schedule a capsule a full year out", Rarity: rare, Icon: "⏳",
			UnlockCriteria: wait(365), Rewards: titled(50, "Patient Planner")},
		models.AchievementDefinition{ID: "five_years_ahead", Title: "Long Game", Description: "Schedule a capsule five years out", Rarity: epic, Icon: "🕰️",
			UnlockCriteria: wait(1825), Rewards: reward(100)},
		models.AchievementDefinition{ID: "decade_ahead", Title: "Decade Dreamer", Description: "Schedule a capsule ten years out", Rarity: legendary, Icon: "🔮",
			UnlockCriteria: wait(3650), Rewards: titled(200, "Decade Dreamer")},
		models.AchievementDefinition{ID: "instant_gratification", Title: "Instant Gratification", Description: "Schedule a capsule for the same day", Rarity: uncommon, Icon: "⚡",
			UnlockCriteria: countOp("min_schedule_days", models.OpLTE, 0), Rewards: reward(15)},
		models.AchievementDefinition{ID: "night_owl", Title: "Night Owl", Description: "Create a capsule between midnight and 4am", Rarity: uncommon, Icon: "🦉",
			UnlockCriteria: action(models.ActionCapsuleCreated, "night_owl"), Rewards: titled(25, "Night Owl")},
		models.AchievementDefinition{ID: "midnight_messenger", Title: "Midnight Messenger", Description: "Create a capsule in the midnight hour", Rarity: rare, Icon: "🌑",
			UnlockCriteria: action(models.ActionCapsuleCreated, "midnight"), Rewards: reward(40)},
		models.AchievementDefinition{ID: "early_bird", Title: "Early Bird", Description: "Create a capsule between 5am and 7am", Rarity: uncommon, Icon: "🐦",
			UnlockCriteria: action(models.ActionCapsuleCreated, "early_bird"), Rewards: titled(25, "Early Bird")},
		models.AchievementDefinition{ID: "new_year_capsule", Title: "Fresh Start", Description: "Create a capsule on New Year's Day", Rarity: rare, Icon: "🎆",
			UnlockCriteria: action(models.ActionCapsuleCreated, "new_year"), Rewards: reward(40)},
		models.AchievementDefinition{ID: "leap_day", Title: "Leap of Faith", Description: "Create a capsule on February 29th", Rarity: legendary, Icon: "🐸", Hidden: true,
			UnlockCriteria: action(models.ActionCapsuleCreated, "leap_day"), Rewards: reward(150)},
		models.AchievementDefinition{ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Create ten capsules on weekends", Rarity: uncommon, Icon: "🏖️",
			UnlockCriteria: count("weekend_capsules", 10), Rewards: reward(25)},
	)

	add(models.CategoryVolume,
		models.AchievementDefinition{ID: "capsules_5", Title: "Getting Started", Description: "Create 5 capsules", Rarity: common, Icon: "📦",
			UnlockCriteria: count("capsules_created", 5), Rewards: reward(15)},
		models.AchievementDefinition{ID: "capsules_10", Title: "Collector", Description: "Create 10 capsules", Rarity: common, Icon: "🗃️",
			UnlockCriteria: count("capsules_created", 10), Rewards: reward(20)},
		models.AchievementDefinition{ID: "capsules_25", Title: "Storyteller", Description: "Create 25 capsules", Rarity: uncommon, Icon: "📚",
			UnlockCriteria: count("capsules_created", 25), Rewards: titled(30, "Storyteller")},
		models.AchievementDefinition{ID: "capsules_50", Title: "Memory Keeper", Description: "Create 50 capsules", Rarity: rare, Icon: "🏛️",
			UnlockCriteria: count("capsules_created", 50), Rewards: reward(50)},
		models.AchievementDefinition{ID: "capsules_100", Title: "Centurion", Description: "Create 100 capsules", Rarity: epic, Icon: "💯",
			UnlockCriteria: count("capsules_created", 100), Rewards: titled(100, "Centurion")},
		models.AchievementDefinition{ID: "capsules_250", Title: "Chronicler", Description: "Create 250 capsules", Rarity: epic, Icon: "📜",
			UnlockCriteria: count("capsules_created", 250), Rewards: reward(150)},
		models.AchievementDefinition{ID: "capsules_500", Title: "Archivist", Description: "Create 500 capsules", Rarity: legendary, Icon: "🗄️",
			UnlockCriteria: count("capsules_created", 500), Rewards: titled(250, "Archivist")},
		models.AchievementDefinition{ID: "media_10", Title: "Shutterbug", Description: "Upload 10 pieces of media", Rarity: common, Icon: "🖼️",
			UnlockCriteria: count("media_uploaded", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "media_50", Title: "Gallery Opening", Description: "Upload 50 pieces of media", Rarity: uncommon, Icon: "🎞️",
			UnlockCriteria: count("media_uploaded", 50), Rewards: reward(30)},
		models.AchievementDefinition{ID: "media_100", Title: "Media Mogul", Description: "Upload 100 pieces of media", Rarity: rare, Icon: "🎬",
			UnlockCriteria: count("media_uploaded", 100), Rewards: titled(50, "Media Mogul")},
		models.AchievementDefinition{ID: "media_500", Title: "Digital Hoarder", Description: "Upload 500 pieces of media", Rarity: epic, Icon: "💾",
			UnlockCriteria: count("media_uploaded", 500), Rewards: reward(120)},
		models.AchievementDefinition{ID: "gigabyte_club", Title: "Gigabyte Club", Description: "Upload a gigabyte of memories", Rarity: epic, Icon: "🧮",
			UnlockCriteria: count("total_media_size", gib), Rewards: reward(100)},
	)

	add(models.CategorySpecial,
		models.AchievementDefinition{ID: "multimedia_capsule", Title: "Multimedia Maestro", Description: "Create a capsule with a photo, video, audio clip and document", Rarity: epic, Icon: "🎭",
			UnlockCriteria: action(models.ActionCapsuleCreated, "all_media_types"), Rewards: titled(100, "Multimedia Maestro")},
		models.AchievementDefinition{ID: "legacy_keeper", Title: "Legacy Keeper", Description: "Set up your legacy vault", Rarity: rare, Icon: "🗝️",
			UnlockCriteria: action(models.ActionLegacyVaultSetup, "legacy_vault"), Rewards: titled(50, "Legacy Keeper")},
		models.AchievementDefinition{ID: "long_letter", Title: "Dear Future Me", Description: "Write a capsule message over 1,000 characters", Rarity: uncommon, Icon: "📝",
			UnlockCriteria: action(models.ActionCapsuleCreated, "long_message"), Rewards: reward(25)},
		models.AchievementDefinition{ID: "busy_day", Title: "Busy Day", Description: "Create five capsules in a single day", Rarity: rare, Icon: "🏃",
			UnlockCriteria: custom("busy_day"), Rewards: reward(40)},
		models.AchievementDefinition{ID: "round_the_clock", Title: "Round the Clock", Description: "Create capsules in every hour of the day", Rarity: legendary, Icon: "🕛", Hidden: true,
			UnlockCriteria: custom("round_the_clock"), Rewards: titled(200, "Timekeeper")},
		models.AchievementDefinition{ID: "three_year_streak", Title: "Timeless", Description: "Use the app in three consecutive years", Rarity: legendary, Icon: "♾️",
			UnlockCriteria: custom("three_consecutive_years"), Rewards: titled(200, "Timeless")},
		models.AchievementDefinition{ID: "decade_planner", Title: "Decade Planner", Description: "Schedule deliveries spanning ten different years", Rarity: epic, Icon: "📆",
			UnlockCriteria: custom("decade_planner"), Rewards: reward(100)},
		models.AchievementDefinition{ID: "renaissance", Title: "Renaissance Soul", Description: "25 capsules, 25 uploads, 25 enhancements and 10 echoes", Rarity: epic, Icon: "🎨",
			UnlockCriteria: combo(cond("capsules_created", 25), cond("media_uploaded", 25), cond("enhancements_used", 25), cond("echoes_sent", 10)),
			Rewards:        titled(120, "Renaissance Soul")},
	)

	add(models.CategoryEnhance,
		models.AchievementDefinition{ID: "enhancements_10", Title: "Touch Up", Description: "Use 10 enhancements", Rarity: common, Icon: "🖌️",
			UnlockCriteria: count("enhancements_used", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "enhancements_50", Title: "Studio Regular", Description: "Use 50 enhancements", Rarity: uncommon, Icon: "🎚️",
			UnlockCriteria: count("enhancements_used", 50), Rewards: reward(30)},
		models.AchievementDefinition{ID: "enhancements_100", Title: "Enhancement Guru", Description: "Use 100 enhancements", Rarity: rare, Icon: "🧙",
			UnlockCriteria: count("enhancements_used", 100), Rewards: titled(60, "Enhancement Guru")},
		models.AchievementDefinition{ID: "sticker_fan", Title: "Sticker Fan", Description: "Add 10 stickers", Rarity: common, Icon: "🏷️",
			UnlockCriteria: count("stickers_used", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "special_effects", Title: "Special Effects", Description: "Add 10 visual effects", Rarity: uncommon, Icon: "🎇",
			UnlockCriteria: count("visual_effects_used", 10), Rewards: reward(20)},
		models.AchievementDefinition{ID: "vintage_soul", Title: "Vintage Soul", Description: "Use the vintage filter 5 times", Rarity: uncommon, Icon: "📷",
			UnlockCriteria: count("filter_usage.vintage", 5), Rewards: titled(25, "Vintage Soul")},
		models.AchievementDefinition{ID: "sound_engineer", Title: "Sound Engineer", Description: "Use audio filters 10 times", Rarity: uncommon, Icon: "🎧",
			UnlockCriteria: count("audio_filters_used", 10), Rewards: reward(25)},
		models.AchievementDefinition{ID: "filter_connoisseur", Title: "Filter Connoisseur", Description: "Try every visual filter", Rarity: epic, Icon: "🌈",
			UnlockCriteria: custom("filter_connoisseur"), Rewards: titled(100, "Filter Connoisseur")},
		models.AchievementDefinition{ID: "audio_maestro", Title: "Audio Maestro", Description: "Try every audio filter", Rarity: epic, Icon: "🎼",
			UnlockCriteria: custom("audio_maestro"), Rewards: reward(100)},
	)

	add(models.CategoryLoyalty,
		models.AchievementDefinition{ID: "streak_3", Title: "Warming Up", Description: "Create capsules three days in a row", Rarity: common, Icon: "🔥",
			UnlockCriteria: streak(3), Rewards: reward(15)},
		models.AchievementDefinition{ID: "streak_7", Title: "Week Warrior", Description: "Create capsules seven days in a row", Rarity: uncommon, Icon: "📆",
			UnlockCriteria: streak(7), Rewards: titled(30, "Week Warrior")},
		models.AchievementDefinition{ID: "streak_14", Title: "Fortnight Focus", Description: "Create capsules fourteen days in a row", Rarity: rare, Icon: "🌓",
			UnlockCriteria: streak(14), Rewards: reward(50)},
		models.AchievementDefinition{ID: "streak_30", Title: "Dedicated", Description: "Create capsules thirty days in a row", Rarity: epic, Icon: "🏅",
			UnlockCriteria: streak(30), Rewards: titled(100, "Dedicated")},
		models.AchievementDefinition{ID: "streak_100", Title: "Unstoppable", Description: "Create capsules one hundred days in a row", Rarity: legendary, Icon: "☄️",
			UnlockCriteria: streak(100), Rewards: titled(250, "Unstoppable")},
		models.AchievementDefinition{ID: "monthly_3", Title: "Regular", Description: "Be active three months in a row", Rarity: common, Icon: "🌙",
			UnlockCriteria: count("monthly_streak", 3), Rewards: reward(20)},
		models.AchievementDefinition{ID: "monthly_6", Title: "Seasoned", Description: "Be active six months in a row", Rarity: rare, Icon: "🍂",
			UnlockCriteria: count("monthly_streak", 6), Rewards: reward(50)},
		models.AchievementDefinition{ID: "monthly_12", Title: "Year-Round Chronicler", Description: "Be active twelve months in a row", Rarity: legendary, Icon: "🌍",
			UnlockCriteria: count("monthly_streak", 12), Rewards: titled(200, "Year-Round Chronicler")},
		models.AchievementDefinition{ID: "hundred_days", Title: "Hundred Days", Description: "Create capsules on 100 different days", Rarity: epic, Icon: "🌅",
			UnlockCriteria: count("unique_creation_days", 100), Rewards: reward(120)},
	)

	add(models.CategoryVariety,
		models.AchievementDefinition{ID: "mixed_media", Title: "Mixed Media", Description: "Upload three different kinds of media", Rarity: uncommon, Icon: "🧩",
			UnlockCriteria: count("distinct_media_types", 3), Rewards: reward(25)},
		models.AchievementDefinition{ID: "photographer", Title: "Photographer", Description: "Upload 10 photos", Rarity: common, Icon: "📷",
			UnlockCriteria: count("media_by_type.photo", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "videographer", Title: "Videographer", Description: "Upload 10 videos", Rarity: uncommon, Icon: "🎥",
			UnlockCriteria: count("media_by_type.video", 10), Rewards: reward(25)},
		models.AchievementDefinition{ID: "podcaster", Title: "Voice of the Past", Description: "Upload 10 audio recordings", Rarity: uncommon, Icon: "🎙️",
			UnlockCriteria: count("media_by_type.audio", 10), Rewards: reward(25)},
		models.AchievementDefinition{ID: "paper_trail", Title: "Paper Trail", Description: "Upload 5 documents", Rarity: uncommon, Icon: "📄",
			UnlockCriteria: count("media_by_type.document", 5), Rewards: reward(20)},
		models.AchievementDefinition{ID: "filter_sampler", Title: "Filter Sampler", Description: "Try five different filters", Rarity: uncommon, Icon: "🎨",
			UnlockCriteria: count("distinct_filters", 5), Rewards: reward(25)},
		models.AchievementDefinition{ID: "jack_of_all_trades", Title: "Jack of All Trades", Description: "Use a sticker, an effect, a visual filter and an audio filter", Rarity: rare, Icon: "🃏",
			UnlockCriteria: combo(cond("stickers_used", 1), cond("visual_effects_used", 1), cond("visual_filters_used", 1), cond("audio_filters_used", 1)),
			Rewards:        reward(40)},
	)

	add(models.CategorySocial,
		models.AchievementDefinition{ID: "recipients_5", Title: "Circle of Friends", Description: "Send capsules to 5 different people", Rarity: common, Icon: "👥",
			UnlockCriteria: count("unique_recipients", 5), Rewards: reward(20)},
		models.AchievementDefinition{ID: "recipients_10", Title: "Connector", Description: "Send capsules to 10 different people", Rarity: uncommon, Icon: "🤝",
			UnlockCriteria: count("unique_recipients", 10), Rewards: reward(30)},
		models.AchievementDefinition{ID: "recipients_25", Title: "Social Butterfly", Description: "Send capsules to 25 different people", Rarity: rare, Icon: "🦋",
			UnlockCriteria: count("unique_recipients", 25), Rewards: titled(60, "Social Butterfly")},
		models.AchievementDefinition{ID: "recipients_50", Title: "Town Crier", Description: "Send capsules to 50 different people", Rarity: epic, Icon: "📣",
			UnlockCriteria: count("unique_recipients", 50), Rewards: reward(120)},
		models.AchievementDefinition{ID: "group_capsule", Title: "Group Message", Description: "Send a capsule to several people at once", Rarity: common, Icon: "📨",
			UnlockCriteria: action(models.ActionMultiRecipientCapsule, ""), Rewards: reward(15)},
		models.AchievementDefinition{ID: "big_audience", Title: "Big Audience", Description: "Send one capsule to 10 people", Rarity: rare, Icon: "🎤",
			UnlockCriteria: count("max_recipients", 10), Rewards: reward(40)},
		models.AchievementDefinition{ID: "broadcaster", Title: "Broadcaster", Description: "Send one capsule to 25 people", Rarity: epic, Icon: "📡",
			UnlockCriteria: count("recipient_milestones.25", 1), Rewards: titled(100, "Broadcaster")},
		models.AchievementDefinition{ID: "first_share", Title: "Show and Tell", Description: "Share an achievement or capsule", Rarity: common, Icon: "🔗",
			UnlockCriteria: action(models.ActionSocialShare, "first_share"), Rewards: reward(10)},
		models.AchievementDefinition{ID: "influencer", Title: "Influencer", Description: "Share 10 times", Rarity: rare, Icon: "🌟",
			UnlockCriteria: count("social_shares", 10), Rewards: titled(50, "Influencer")},
		models.AchievementDefinition{ID: "generous_sender", Title: "Generous Sender", Description: "Send 50 capsules to other people", Rarity: epic, Icon: "🎁",
			UnlockCriteria: count("capsules_to_others", 50), Rewards: reward(100)},
	)

	add(models.CategoryContent,
		models.AchievementDefinition{ID: "perfectionist", Title: "Perfectionist", Description: "Edit capsules 10 times", Rarity: uncommon, Icon: "🔍",
			UnlockCriteria: count("capsules_edited", 10), Rewards: reward(20)},
		models.AchievementDefinition{ID: "organizer", Title: "Organizer", Description: "Organize 25 items in your vault", Rarity: common, Icon: "🗂️",
			UnlockCriteria: count("vault_media_organized", 25), Rewards: reward(15)},
		models.AchievementDefinition{ID: "master_organizer", Title: "Master Organizer", Description: "Organize 100 items in your vault", Rarity: rare, Icon: "🧹",
			UnlockCriteria: count("vault_media_organized", 100), Rewards: reward(50)},
		models.AchievementDefinition{ID: "curator", Title: "Curator", Description: "Create 5 custom vault folders", Rarity: uncommon, Icon: "🏺",
			UnlockCriteria: count("custom_vault_folders", 5), Rewards: titled(30, "Curator")},
		models.AchievementDefinition{ID: "estate_planner", Title: "Estate Planner", Description: "Name three legacy beneficiaries", Rarity: rare, Icon: "📋",
			UnlockCriteria: count("legacy_beneficiaries", 3), Rewards: reward(40)},
		models.AchievementDefinition{ID: "visual_diary", Title: "Visual Diary", Description: "Create capsules with media seven days in a row", Rarity: rare, Icon: "📔",
			UnlockCriteria: count("media_capsule_streak", 7), Rewards: titled(50, "Visual Diarist")},
	)

	add(models.CategoryEngagement,
		models.AchievementDefinition{ID: "echoes_10", Title: "Good Listener", Description: "Send 10 echoes", Rarity: common, Icon: "👂",
			UnlockCriteria: count("echoes_sent", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "echoes_50", Title: "Echo Chamber", Description: "Send 50 echoes", Rarity: rare, Icon: "🔊",
			UnlockCriteria: count("echoes_sent", 50), Rewards: titled(50, "Echo Chamber")},
		models.AchievementDefinition{ID: "echoes_received_10", Title: "Heard", Description: "Receive 10 echoes", Rarity: common, Icon: "📬",
			UnlockCriteria: count("echoes_received", 10), Rewards: reward(15)},
		models.AchievementDefinition{ID: "echoes_received_100", Title: "Crowd Favorite", Description: "Receive 100 echoes", Rarity: epic, Icon: "🎉",
			UnlockCriteria: count("echoes_received", 100), Rewards: reward(100)},
		models.AchievementDefinition{ID: "echo_senders_10", Title: "Many Voices", Description: "Receive echoes from 10 different people", Rarity: uncommon, Icon: "🗣️",
			UnlockCriteria: count("unique_echo_senders", 10), Rewards: reward(30)},
		models.AchievementDefinition{ID: "beloved", Title: "Beloved", Description: "Receive echoes from 25 different people", Rarity: epic, Icon: "💖",
			UnlockCriteria: custom("echo_senders_25"), Rewards: titled(100, "Beloved")},
		models.AchievementDefinition{ID: "achiever_10", Title: "Achiever", Description: "Unlock 10 achievements", Rarity: uncommon, Icon: "🎖️",
			UnlockCriteria: count("achievement_count", 10), Rewards: reward(25)},
		models.AchievementDefinition{ID: "achiever_25", Title: "Overachiever", Description: "Unlock 25 achievements", Rarity: rare, Icon: "🏆",
			UnlockCriteria: count("achievement_count", 25), Rewards: titled(60, "Overachiever")},
		models.AchievementDefinition{ID: "achiever_50", Title: "Completionist", Description: "Unlock 50 achievements", Rarity: legendary, Icon: "💎",
			UnlockCriteria: count("achievement_count", 50), Rewards: titled(200, "Completionist")},
		models.AchievementDefinition{ID: "legend", Title: "Legend", Description: "Earn 1,000 achievement points", Rarity: legendary, Icon: "🌠",
			UnlockCriteria: count("achievement_points", 1000), Rewards: titled(250, "Legend")},
	)

	return defs
}
