package constant

const (
	EMOJI_WAVING_HAND  = "\U0001F44B"           //👋
	EMOJI_VIDEO_GAME   = "\U0001F3AE"           //🎮
	EMOJI_STAR         = "\U00002B50"           //⭐
	EMOJI_CALENDAR     = "\U0001F4C5"           //📅
	EMOJI_CLAPPER      = "\U0001F3AC"           //🎬
	EMOJI_COMPUTER     = "\U0001F4BB"           //💻
	EMOJI_RED_TRIANGLE = "\U0001F53B"           //🔻
	EMOJI_BLUE_DIAMOND = "\U0001F539"           //🔹
	EMOJI_HOURGLASS    = "\U000023F3"           //⏳
	EMOJI_CROSS_MARK   = "\U0000274C"           //❌
	EMOJI_OK_HAND      = "\U0001F44C"           //👌
	EMOJI_POINT_DOWN   = "\U0001F447"           //👇
	EMOJI_WARNING      = "\U000026A0\U0000FE0F" //⚠️

	COMMAND_START = "start"

	BUTTON_TEXT_CONTINUE = "بله " + EMOJI_VIDEO_GAME
	BUTTON_TEXT_STOP     = "نه " + EMOJI_CROSS_MARK

	BUTTON_CODE_CONTINUE     = "yes"
	BUTTON_CODE_STOP         = "no"
	BUTTON_CODE_GENRE_PREFIX = "genre_"

	MSG_WELCOME         = "سلام " + EMOJI_WAVING_HAND + "\nحداکثر ۳ کلمه درباره بازی مورد نظرت بگو (فارسی یا انگلیسی) تا بازی‌های مرتبط معرفی کنم " + EMOJI_VIDEO_GAME
	MSG_ASK_KEYWORDS    = "حداکثر ۳ کلمه درباره بازی مورد نظرت بگو (فارسی یا انگلیسی) " + EMOJI_VIDEO_GAME
	MSG_ASK_GENRE       = "یک ژانر برای بازی انتخاب کن:"
	MSG_USE_BUTTONS     = "لطفاً از دکمه‌های زیر استفاده کن " + EMOJI_POINT_DOWN
	MSG_SEARCHING       = "ژانر انتخاب شد: %s\n" + EMOJI_HOURGLASS + " در حال جستجو بازی‌ها..."
	MSG_NOT_FOUND       = EMOJI_CROSS_MARK + " بازی مرتبط پیدا نشد. دوباره تلاش کن."
	MSG_SEARCH_FAILED   = EMOJI_WARNING + " سرویس جستجو فعلاً در دسترس نیست. کمی بعد دوباره تلاش کن."
	MSG_ASK_CONTINUE    = "میخوای یه بازی دیگه هم معرفی کنم؟"
	MSG_FAREWELL        = "باشه " + EMOJI_OK_HAND + " هر وقت بازی جدید خواستی فقط پیام بده."
	MSG_RATING_LABEL    = "امتیاز"
	MSG_RELEASED_LABEL  = "تاریخ انتشار"
	MSG_TRAILER_LABEL   = "تریلر"
	MSG_SYSTEM_REQ_HEAD = "سیستم مورد نیاز (PC)"
)
