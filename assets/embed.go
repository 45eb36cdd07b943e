package assets

import (
	_ "embed"
)

// ClientHTML is the browser page that mirrors the control panel over the
// /ws websocket.
//
//go:embed client.html
var ClientHTML []byte
