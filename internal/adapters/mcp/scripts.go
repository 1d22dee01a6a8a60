package mcp

import (
	"encoding/json"
	"fmt"
)

// Interaction helpers ride the raw-eval path: the bridge itself only
// evaluates, so clicking and typing are script text built here. Every
// caller-supplied value is interpolated as a JSON string literal, never
// spliced into the script raw.

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

func clickScript(selector string) string {
	return fmt.Sprintf(`return (() => {
    const el = document.querySelector(%s);
    if (el) { el.click(); return 'clicked'; }
    return 'element not found';
})()`, jsString(selector))
}

func typeTextScript(selector, text string) string {
	return fmt.Sprintf(`return (() => {
    const el = document.querySelector(%s);
    if (el) {
        el.value = %s;
        el.dispatchEvent(new Event('input', { bubbles: true }));
        return 'typed';
    }
    return 'element not found';
})()`, jsString(selector), jsString(text))
}

func queryAllScript(selector string) string {
	return fmt.Sprintf(`return (() => {
    const els = document.querySelectorAll(%s);
    return JSON.stringify(Array.from(els).map((el, i) => ({
        index: i,
        tag: el.tagName.toLowerCase(),
        id: el.id || null,
        class: el.className || null,
        text: el.textContent?.trim().substring(0, 100) || null
    })));
})()`, jsString(selector))
}
