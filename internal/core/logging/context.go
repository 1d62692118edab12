package logging

import "context"

type fieldsKey struct{}

// fields are the log fields carried by a context.
type fields struct {
	pluginID string
	toastID  string
}

func fromContext(ctx context.Context) fields {
	if ctx == nil {
		return fields{}
	}
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f
}

// WithPluginID returns a context whose log events carry plugin_id.
func WithPluginID(ctx context.Context, pluginID string) context.Context {
	f := fromContext(ctx)
	f.pluginID = pluginID
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithToastID returns a context whose log events carry toast_id.
func WithToastID(ctx context.Context, toastID string) context.Context {
	f := fromContext(ctx)
	f.toastID = toastID
	return context.WithValue(ctx, fieldsKey{}, f)
}

// PluginID returns the plugin id stored in ctx, or "".
func PluginID(ctx context.Context) string {
	return fromContext(ctx).pluginID
}

// ToastID returns the notification id stored in ctx, or "".
func ToastID(ctx context.Context) string {
	return fromContext(ctx).toastID
}
