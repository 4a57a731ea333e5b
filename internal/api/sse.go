package api

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/harukimoto/anitrack/internal/event"
)

// SSEHandler 处理 Server-Sent Events 连接
func SSEHandler(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Transfer-Encoding", "chunked")

	// EventBus 是回调模式，这里搭一个转发桥写进客户端 channel
	clientChan := make(chan event.Event, 10)
	bridgeHandler := func(e event.Event) {
		// 非阻塞发送，避免慢客户端阻塞总线
		select {
		case clientChan <- e:
		default:
		}
	}

	topics := []event.EventType{
		event.EventScanProgress,
		event.EventScanComplete,
		event.EventCatalogRefreshed,
		event.EventFeedUpdated,
	}

	subIDs := make(map[event.EventType]string)
	for _, t := range topics {
		subIDs[t] = event.GlobalBus.Subscribe(t, bridgeHandler)
	}

	c.SSEvent("message", "connected")
	c.Writer.Flush()

	// clientChan 不关闭，Publish 已经拿到的 handler 快照还可能写入
	// 没有引用后由 GC 回收
	defer func() {
		for t, id := range subIDs {
			event.GlobalBus.Unsubscribe(t, id)
		}
		log.Println("SSE Client disconnected")
	}()

	for {
		select {
		case evt := <-clientChan:
			data, err := json.Marshal(evt.Payload)
			if err != nil {
				log.Printf("SSE JSON Marshal error: %v", err)
				continue
			}
			// 事件名即为 Topic
			c.SSEvent(string(evt.Type), string(data))
			c.Writer.Flush()

		case <-c.Writer.CloseNotify():
			return
		}
	}
}
