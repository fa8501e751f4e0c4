package models

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultWriteWait は1回の書き込みにかけてよい時間
const DefaultWriteWait = 5 * time.Second

// Websocketクライアントを定義
type Client struct {
	ID   string // 接続ごとのID
	Conn *websocket.Conn

	// 読まないクライアントがセッションのループを止めないよう、書き込みは必ず期限付き
	writeWait time.Duration

	// gorilla/websocket は同時書き込み不可。セッションのループとPingの両方が書く
	mu sync.Mutex
}

// NewClient は接続をラップする。writeWait が0なら DefaultWriteWait
func NewClient(id string, conn *websocket.Conn, writeWait time.Duration) *Client {
	if writeWait <= 0 {
		writeWait = DefaultWriteWait
	}
	return &Client{ID: id, Conn: conn, writeWait: writeWait}
}

// Send はJSONメッセージを1つ書き込む
func (c *Client) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.Conn.WriteJSON(v)
}

// Ping はPingフレームを送る
func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeWait))
}

// Close は接続を閉じる
func (c *Client) Close() error {
	return c.Conn.Close()
}
