// Package web хранит статические файлы, которые отдаёт сервер.
package web

import _ "embed"

// ServiceWorker разбирает PushPayload ({"title","body","url"}) и открывает url по клику.
//
//go:embed sw.js
var ServiceWorker []byte
