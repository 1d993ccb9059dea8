package commands

// TelegramCommands contains all commands for the Telegram bot
const (
	// Main commands
	Start = "/start"
	Pay   = "/pay"

	// Keyboard commands
	Help = "Help"
)

// HelpText explains the bot's usage
const HelpText = `Send <b>/pay &lt;amount&gt; [note]</b> to get a UPI payment QR code.

Examples:
<code>/pay 250</code>
<code>/pay 120.50 Dinner</code>

A plain message like <code>99 books</code> works too.`
