package view

import (
	"log/slog"
	"path/filepath"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var (
	imageTypes = []FileType{
		{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
	textTypes = []FileType{
		{TypeName: "Text", Extensions: []string{".txt"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
)

// Dialogs wraps the native Tk file choosers. ok is false when the user
// cancels.
type Dialogs struct {
	logger *slog.Logger
}

// NewDialogs returns file choosers for the batch controller and presenter.
func NewDialogs(logger *slog.Logger) *Dialogs { return &Dialogs{logger: logger} }

// PickFolder asks for the folder holding the images of a batch.
func (d *Dialogs) PickFolder() (string, bool) {
	dir := ChooseDirectory(Title("Select image folder"))
	return dir, dir != ""
}

// PickImage asks for a single image file.
func (d *Dialogs) PickImage(title string) (string, bool) {
	return firstFile(GetOpenFile(Title(title), Filetypes(imageTypes)))
}

// PickTranscript asks for an existing transcript.
func (d *Dialogs) PickTranscript() (string, bool) {
	return firstFile(GetOpenFile(Title("Open transcript"), Filetypes(textTypes)))
}

// PickTranscriptTarget asks where the transcript should be saved. A name
// without extension gets ".txt".
func (d *Dialogs) PickTranscriptTarget() (string, bool) {
	path := GetSaveFile(Title("Save transcript as"), Filetypes(textTypes))
	if path == "" {
		return "", false
	}
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	return path, true
}

func firstFile(files []string) (string, bool) {
	if len(files) == 0 || files[0] == "" {
		return "", false
	}
	return files[0], true
}

func (d *Dialogs) message(icon, title, msg string) {
	if d != nil && d.logger != nil {
		d.logger.Debug("message box", "icon", icon, "title", title, "msg", msg)
	}
	MessageBox(Icon(icon), Msg(msg), Title(title))
}

// confirm shows a yes/no question.
func (d *Dialogs) confirm(title, msg string) bool {
	answer := MessageBox(Icon("warning"), Msg(msg), Title(title), Type("yesno"))
	if d != nil && d.logger != nil {
		d.logger.Debug("confirm box", "title", title, "answer", answer)
	}
	return answer == "yes"
}
