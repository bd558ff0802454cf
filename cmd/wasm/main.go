//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/google/uuid"

	"github.com/trailmetrics/activity-analyzer/session"
)

// sess is the single browser-tab-lifetime session backing every
// exported JS global below: greet, set{World,US}Data, analyze{GPX,TCX,FIT},
// exportData, and mergeContexts.
var sess = session.New()

func main() {
	js.Global().Set("greet", js.FuncOf(greet))
	js.Global().Set("setWorldData", js.FuncOf(setWorldData))
	js.Global().Set("setUSData", js.FuncOf(setUSData))
	js.Global().Set("analyzeGPX", js.FuncOf(analyzeGPX))
	js.Global().Set("analyzeTCX", js.FuncOf(analyzeTCX))
	js.Global().Set("analyzeFIT", js.FuncOf(analyzeFIT))
	js.Global().Set("exportData", js.FuncOf(exportData))
	js.Global().Set("mergeContexts", js.FuncOf(mergeContexts))
	select {}
}

func greet(_ js.Value, _ []js.Value) any {
	return sess.Greet()
}

func setWorldData(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("setWorldData requires a geojson string argument")
	}

	if err := sess.SetWorldData([]byte(args[0].String())); err != nil {
		return errResult(err.Error())
	}

	return okResult(nil)
}

func setUSData(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("setUSData requires a geojson string argument")
	}

	if err := sess.SetUSData([]byte(args[0].String())); err != nil {
		return errResult(err.Error())
	}

	return okResult(nil)
}

func analyzeGPX(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("analyzeGPX requires a text argument")
	}

	rpt, err := sess.IngestGPX([]byte(args[0].String()), "activity.gpx")
	if err != nil {
		return errResult(err.Error())
	}

	return jsonResult(rpt)
}

func analyzeTCX(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("analyzeTCX requires a text argument")
	}

	rpt, err := sess.IngestTCX([]byte(args[0].String()), "activity.tcx")
	if err != nil {
		return errResult(err.Error())
	}

	return jsonResult(rpt)
}

func analyzeFIT(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("analyzeFIT requires a Uint8Array argument")
	}

	fileArg := args[0]
	if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
		return errResult("fit file bytes are required")
	}

	fileBytes := make([]byte, fileArg.Get("length").Int())
	if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
		return errResult("failed to read FIT bytes from JS input")
	}

	rpt, err := sess.IngestFIT(fileBytes, "activity.fit")
	if err != nil {
		return errResult(err.Error())
	}

	return jsonResult(rpt)
}

func exportData(_ js.Value, args []js.Value) any {
	if len(args) < 4 {
		return errResult("exportData requires (contextID, format, splitStartMs, splitEndMs)")
	}

	id, err := uuid.Parse(args[0].String())
	if err != nil {
		return errResult("invalid context id: " + err.Error())
	}

	out, err := sess.Export(id, args[1].String(), uint64(args[2].Int()), uint64(args[3].Int()))
	if err != nil {
		return errResult(err.Error())
	}

	return okResult(out)
}

func mergeContexts(_ js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errResult("mergeContexts requires (idA, idB, format)")
	}

	idA, err := uuid.Parse(args[0].String())
	if err != nil {
		return errResult("invalid context id A: " + err.Error())
	}

	idB, err := uuid.Parse(args[1].String())
	if err != nil {
		return errResult("invalid context id B: " + err.Error())
	}

	out, warnings, err := sess.Merge(idA, idB, args[2].String())
	if err != nil {
		return errResult(err.Error())
	}

	warningStrings := make([]any, len(warnings))
	for i, w := range warnings {
		warningStrings[i] = w.Stream
	}

	return map[string]any{"ok": true, "data": out, "warnings": warningStrings}
}

func errResult(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

func okResult(data any) map[string]any {
	return map[string]any{"ok": true, "data": data}
}

func jsonResult(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return errResult(err.Error())
	}

	return map[string]any{"ok": true, "data": string(b)}
}
