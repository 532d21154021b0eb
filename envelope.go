package fieldfmt

// Protocol envelope constructors. Each builds a fixed-shape mapping ready
// for any of the renderers.

// Ok builds {"code": "ok", "result": ...}.
func Ok(result any) map[string]any {
	return map[string]any{"code": "ok", "result": result}
}

// OkTrace builds {"code": "ok", "result": ..., "trace": ...}.
func OkTrace(result, trace any) map[string]any {
	return map[string]any{"code": "ok", "result": result, "trace": trace}
}

// Error builds {"code": "error", "error": message}.
func Error(message string) map[string]any {
	return map[string]any{"code": "error", "error": message}
}

// ErrorTrace builds {"code": "error", "error": message, "trace": ...}.
func ErrorTrace(message string, trace any) map[string]any {
	return map[string]any{"code": "error", "error": message, "trace": trace}
}

// Startup builds {"code": "startup", "config": ..., "args": ..., "env": ...}.
func Startup(config, args, env any) map[string]any {
	return map[string]any{"code": "startup", "config": config, "args": args, "env": env}
}

// Status builds {"code": code, ...fields}. Fields are copied; a "code"
// entry in fields is overwritten.
func Status(code string, fields map[string]any) map[string]any {
	result := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		result[k] = v
	}
	result["code"] = code
	return result
}

// CLIError builds the standard envelope for a CLI usage error, such as an
// unparseable flag. Print it as JSON and exit with code 2.
func CLIError(message string) map[string]any {
	return map[string]any{
		"code":       "error",
		"error_code": "invalid_request",
		"error":      message,
		"retryable":  false,
		"trace":      map[string]any{"duration_ms": 0},
	}
}
