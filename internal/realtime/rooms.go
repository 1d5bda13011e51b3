package realtime

// Room naming conventions shared by the handlers.

// ChatRoomName returns the conversation room shared by two users. The pair is
// ordered so both participants resolve the same name.
func ChatRoomName(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return "chat_" + a + "_" + b
}

// UserRoomName is the per-user notification room.
func UserRoomName(userID string) string {
	return "user_" + userID
}

// StatusRoomName is the room where one user's online status is published.
func StatusRoomName(userID string) string {
	return "user_status_" + userID
}

// GlobalRoomName is the single room of the site-wide chat.
const GlobalRoomName = "global"
