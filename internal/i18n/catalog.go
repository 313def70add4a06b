// Package i18n holds the console message catalog.
//
// Every line a user reads is looked up by key in a golang.org/x/text catalog.
// Japanese is the default and fallback language; English is the alternative.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a console message.
type Key string

const (
	Start          Key = "start"
	Found          Key = "found"
	ImagePath      Key = "image.path"
	ResizeTarget   Key = "resize.target"
	ResizeDone     Key = "resize.done"
	SaveTarget     Key = "save.target"
	SaveDone       Key = "save.done"
	Finish         Key = "finish"
	DecodeSkipped  Key = "warn.decode_skipped"
	ArgumentCount  Key = "error.argument_count"
	InvalidInput   Key = "error.invalid_input"
	InvalidSize    Key = "error.invalid_size"
	DirectoryError Key = "error.directory"
	DecodeError    Key = "error.decode"
	ResizeError    Key = "error.resize"
	WriteError     Key = "error.write"
	LockedError    Key = "error.locked"
	FlagError      Key = "error.flags"
	UnknownError   Key = "error.unknown"
	StageCollect   Key = "stage.collect"
	StageResize    Key = "stage.resize"
	StageWrite     Key = "stage.write"
	StageValidate  Key = "stage.validate"
	SummaryFile    Key = "summary.file"
	SummarySource  Key = "summary.source"
	SummaryTarget  Key = "summary.target"
	SummarySize    Key = "summary.size"
	SummaryTotal   Key = "summary.total"
	SummarySkipped Key = "summary.skipped"
)

var messages = map[Key][2]string{
	// key: {ja, en}
	Start:          {"処理を開始します。", "Process start."},
	Found:          {"%s 件の画像が見つかりました。", "Found %s image(s)."},
	ImagePath:      {"  %s", "  %s"},
	ResizeTarget:   {"画像を %s x %s にリサイズします。", "Resizing images to %s x %s."},
	ResizeDone:     {"リサイズが完了しました。", "Resize complete."},
	SaveTarget:     {"%s に保存します。", "Saving to %s."},
	SaveDone:       {"保存が完了しました。", "Save complete."},
	Finish:         {"処理を終了します。", "Process finished."},
	DecodeSkipped:  {"画像を読み込めないためスキップします: %s", "Skipping unreadable image: %s"},
	ArgumentCount:  {"引数の数が正しくありません。使い方: pngresize %s", "Wrong number of arguments. Usage: pngresize %s"},
	InvalidInput:   {"入力ディレクトリが存在しません: %s", "Input directory does not exist: %s"},
	InvalidSize:    {"サイズの指定が正しくありません: %s", "Invalid size: %s"},
	DirectoryError: {"出力ディレクトリを作成できません: %s", "Cannot create output directory: %s"},
	DecodeError:    {"画像を読み込めません: %s", "Cannot read image: %s"},
	ResizeError:    {"画像をリサイズできません: %s", "Cannot resize image: %s"},
	WriteError:     {"画像を保存できません: %s", "Cannot save image: %s"},
	LockedError:    {"出力ディレクトリは別の処理が使用中です: %s", "Output directory is in use by another run: %s"},
	FlagError:      {"オプションの指定が正しくありません: %s", "Invalid option: %s"},
	UnknownError:   {"エラーが発生しました: %s", "An error occurred: %s"},
	StageValidate:  {"検証", "validate"},
	StageCollect:   {"収集", "collect"},
	StageResize:    {"変換", "resize"},
	StageWrite:     {"保存", "save"},
	SummaryFile:    {"ファイル", "File"},
	SummarySource:  {"元サイズ", "Source"},
	SummaryTarget:  {"変換後", "Target"},
	SummarySize:    {"容量", "Size"},
	SummaryTotal:   {"合計", "Total"},
	SummarySkipped: {"スキップ", "Skipped"},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Japanese))
	for key, text := range messages {
		if err := b.SetString(language.Japanese, string(key), text[0]); err != nil {
			panic(fmt.Sprintf("i18n: %s: %v", key, err))
		}
		if err := b.SetString(language.English, string(key), text[1]); err != nil {
			panic(fmt.Sprintf("i18n: %s: %v", key, err))
		}
	}
	return b
}

// Languages lists the supported language codes.
func Languages() []string {
	return []string{"ja", "en"}
}

// Printer renders catalog messages in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for lang ("ja" or "en"). Unknown or empty
// codes fall back to Japanese.
func NewPrinter(lang string) *Printer {
	tag := language.Japanese
	if parsed, err := language.Parse(strings.TrimSpace(lang)); err == nil {
		if base, _ := parsed.Base(); base.String() == "en" {
			tag = language.English
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Language returns the resolved language tag.
func (p *Printer) Language() language.Tag {
	return p.tag
}

// Sprintf renders the message for key with args. Numbers should be passed
// preformatted: the printer would otherwise apply locale digit grouping.
func (p *Printer) Sprintf(key Key, args ...any) string {
	return p.p.Sprintf(message.Key(string(key), string(key)), args...)
}
