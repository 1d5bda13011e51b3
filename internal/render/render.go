// Package render turns chat and notification records into self-contained
// HTML fragments served to the web client. Presentation rules (URL
// confirmation anchors, edit-window affordances, attachment decoration) live
// here so every view renders messages identically.
package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/miron-alexandru/PlayStyleCompass/internal/models"
	"github.com/miron-alexandru/PlayStyleCompass/pkg/utils"
)

// Messages longer than this render collapsed behind a read-more toggle.
const readMoreLimit = 300

// MessageView is the rendering input for one chat message.
type MessageView struct {
	Message  models.ChatMessage
	Sender   models.User
	IsOwn    bool
	IsPinned bool
	Timezone *time.Location
	Now      time.Time
}

var messageTmpl = template.Must(template.New("message").Funcs(template.FuncMap{
	"wrapURLs":   WrapURLs,
	"formatTime": FormatTimestamp,
	"fileSize":   FormatFileSize,
	"fileName":   FileNameFromURL,
}).Parse(`<div class="message-wrapper {{if .IsOwn}}sent{{else}}received{{end}}" data-message-id="{{.Message.ID}}">
  <img src="{{.Sender.ProfilePicture}}" alt="Profile Picture" class="chat-profile-picture">
  <a class="message-profile-name" href="/users/profile/{{.Sender.Username}}/">{{.SenderName}}</a>
  <div class="message-box {{if .IsOwn}}sent{{else}}received{{end}}">
    <div class="message-content-wrapper" data-creation-time="{{.CreatedAtISO}}">
      <div class="message-content{{if .ShowReadMore}} collapsed{{end}}">{{wrapURLs .Message.Content}}</div>
      {{- if .ShowReadMore}}
      <button class="read-more-button">Read more</button>
      {{- end}}
      {{- if .Message.FileURL}}
      <div class="message-file">
        <a href="{{.Message.FileURL}}" target="_blank" rel="noopener">{{fileName .Message.FileURL}}</a>
        <span class="file-size">{{fileSize .Message.FileSize}}</span>
      </div>
      {{- end}}
      {{- if .Message.Edited}}
      <div class="message-edited">Edited</div>
      {{- end}}
      <div class="message-timestamp">{{formatTime .Message.CreatedAt .Timezone}}</div>
      {{- if .ShowEdit}}
      <button class="edit-message-button">Edit</button>
      {{- end}}
      <button class="pin-message-button">{{if .IsPinned}}Unpin{{else}}Pin{{end}}</button>
    </div>
  </div>
</div>`))

// SenderName is the display name linkified above the message box.
func (v MessageView) SenderName() string {
	u := v.Sender
	return u.DisplayName()
}

// CreatedAtISO feeds the data attribute the edit-expiry sweep reads.
func (v MessageView) CreatedAtISO() string {
	return v.Message.CreatedAt.Format(time.RFC3339)
}

// ShowEdit gates the edit affordance: own messages only, and only while the
// edit window is open.
func (v MessageView) ShowEdit() bool {
	now := v.Now
	if now.IsZero() {
		now = time.Now()
	}
	return v.IsOwn && v.Message.Editable(now)
}

// ShowReadMore reports whether the body is long enough that the collapsed
// preview actually hides something.
func (v MessageView) ShowReadMore() bool {
	body := v.Message.Content
	return NeedsReadMore(body, utils.TruncateString(body, readMoreLimit))
}

// Message renders a single chat message to an HTML fragment.
func Message(v MessageView) (template.HTML, error) {
	var b strings.Builder
	if err := messageTmpl.Execute(&b, v); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

var notificationTmpl = template.Must(template.New("notification").Parse(
	`<li class="notification{{if not .IsRead}} unread{{end}}" data-notification-id="{{.ID}}">
  <a class="dropdown-item text-wrap" href="#">{{.MessageHTML}}</a>
  <button class="btn-close" aria-label="Dismiss"></button>
</li>`))

type notificationView struct {
	ID          string
	IsRead      bool
	MessageHTML template.HTML
}

// Notification renders one feed entry. Notification messages are produced
// server-side and may carry markup, so the body is trusted as-is.
func Notification(n models.Notification) (template.HTML, error) {
	var b strings.Builder
	err := notificationTmpl.Execute(&b, notificationView{
		ID:          n.ID,
		IsRead:      n.IsRead,
		MessageHTML: template.HTML(n.Message),
	})
	if err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}
