package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "max" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須項目が不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_small":
			return "値が小さすぎます" + suffix(data, "min", "（最小 ", "）")
		case "too_big":
			return "大きすぎます" + suffix(data, "max", "（最大 ", "）")
		case "too_long":
			return "長すぎます" + suffix(data, "max", "（最大 ", " 文字）")
		case "invalid_enum":
			return "許可されていない値です"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_address":
			return "無効なウォレットアドレス形式です"
		case "date_order":
			return "終了日時が開始日時より前です"
		case "uniqueness":
			return "値が重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "too_small":
			return "value too small" + suffix(data, "min", " (min ", ")")
		case "too_big":
			return "too big" + suffix(data, "max", " (max ", ")")
		case "too_long":
			return "too long" + suffix(data, "max", " (max ", " characters)")
		case "invalid_enum":
			return "value not in allowed set"
		case "invalid_format":
			return "invalid format"
		case "invalid_address":
			return "invalid wallet address"
		case "date_order":
			return "end date is before start date"
		case "uniqueness":
			return "duplicate value"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

func suffix(data map[string]string, key, open, closing string) string {
	if v, ok := data[key]; ok && v != "" {
		return open + v + closing
	}
	return ""
}

var (
	translatorMu      sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	translatorMu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	translatorMu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	translatorMu.Lock()
	currentTranslator = tr
	translatorMu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	translatorMu.RLock()
	tr := currentTranslator
	translatorMu.RUnlock()
	return tr.Message(code, data)
}
