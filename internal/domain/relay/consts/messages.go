package consts

// User-facing texts, HTML parse mode
const (
	MsgProcessing      = "🔍 <b>Loading content...</b>"
	MsgInvalidLink     = "❌ Invalid link format"
	MsgFetchFailed     = "❌ Could not load content. Try another link"
	MsgTooLarge        = "⚠️ The video is too large to send through the bot. Maximum size is 50 MB."
	MsgProcessingError = "⚠️ Processing error. Try again later"
)

// HelpText answers /start and /help
const HelpText = `🎵 <b>Hi! I'm TikTok Saver Bot</b> 🎵

📲 Just send me a link to a TikTok video or photo album

✅ Downloads without watermarks
🖼️ Photo albums are saved as PNG
🎵 The soundtrack is sent as audio
📸 Albums are sent with captions
⚡ Fast and simple!`
