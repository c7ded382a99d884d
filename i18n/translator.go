package i18n

// Translator retrieves localized messages for diagnostic kinds. data provides
// optional metadata to embed in the message (for example, "field" or
// "schema").
type Translator interface {
	Message(kind string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(kind string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch kind {
		case "schema_not_found":
			return "スキーマが見つかりません"
		case "invalid_field_name":
			return "フィールド名が不正です"
		case "type_mismatch":
			return "型が一致しません"
		case "missing_required_field":
			return "必須フィールドが不足しています"
		case "duplicate_field":
			return "フィールドが重複しています"
		case "block_not_closed":
			return "ブロックが閉じられていません"
		case "nested_blocks":
			return "ブロックが入れ子になっています"
		case "empty_block":
			return "ブロックが空です"
		case "mixed_data_format":
			return "データ形式が混在しています"
		case "external_reference_failed":
			return "外部参照の解決に失敗しました"
		}
	default: // "en"
		switch kind {
		case "schema_not_found":
			return "schema not found"
		case "invalid_field_name":
			return "invalid field name"
		case "type_mismatch":
			return "type mismatch"
		case "missing_required_field":
			return "required field missing"
		case "duplicate_field":
			return "duplicate field"
		case "block_not_closed":
			return "block not closed"
		case "nested_blocks":
			return "nested blocks are not allowed"
		case "empty_block":
			return "empty block"
		case "mixed_data_format":
			return "mixed data layouts in one block"
		case "external_reference_failed":
			return "external reference failed"
		}
	}
	return kind
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given kind using the current Translator.
func T(kind string, data map[string]string) string {
	return currentTranslator.Message(kind, data)
}
