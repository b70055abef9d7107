package domain

// CommandID identifies one of the externally invocable commands.
type CommandID string

const (
	CommandInsertTimestamp CommandID = "unix-time-utility.insertUnixTimestamp"
	CommandUnixToHuman     CommandID = "unix-time-utility.convertUnixToHuman"
	CommandHumanToUnix     CommandID = "unix-time-utility.convertToUnixTimestamp"
)

// PromptTimestamp is the label shown when a conversion has to ask for its input.
// Both conversions use it.
const PromptTimestamp = "Enter Timestamp"

// LogName is the default name of the shared output log.
const LogName = "Unix Time Utility"

// MessageSelectionReplaced is the notification shown after a selection is replaced.
const MessageSelectionReplaced = "Selection replaced"

// Commands lists every command in registration order.
func Commands() []CommandID {
	return []CommandID{CommandInsertTimestamp, CommandUnixToHuman, CommandHumanToUnix}
}

// Short returns the trailing segment of the ID, e.g. "insertUnixTimestamp".
func (c CommandID) Short() string {
	s := string(c)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}

// ParseCommand resolves a full or short command ID.
func ParseCommand(name string) (CommandID, error) {
	for _, c := range Commands() {
		if string(c) == name || c.Short() == name {
			return c, nil
		}
	}
	return "", ErrUnknownCommand
}
