package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	clientID, _ := c.Locals("clientID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, clientID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "client", clientID, "error", err)
		if msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()}); merr == nil {
			if werr := c.WriteJSON(msg); werr != nil {
				log.Debugw("failed to send registration error", "game", gameID, "client", clientID, "error", werr)
			}
		}
		if cerr := c.Close(); cerr != nil {
			log.Debugw("failed to close rejected connection", "game", gameID, "client", clientID, "error", cerr)
		}
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("read error", "game", gameID, "client", clientID, "error", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("parse error", "game", gameID, "client", clientID, "error", err)
			wsc.sendError(gameID, clientID, "malformed message")
			continue
		}

		if err := wsc.handleMessage(gameID, clientID, msg); err != nil {
			log.Debugw("handle error", "game", gameID, "client", clientID, "type", msg.Type, "error", err)
			wsc.sendError(gameID, clientID, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, clientID, c)
}

// handleMessage dispatches one client message. Moves and resets are
// broadcast by the table; legal move lists go back to the asking client only.
func (wsc *WebSocketController) handleMessage(gameID, clientID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypeLegalMoves:
		var sel ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return err
		}
		payload, err := wsc.gameService.LegalMoves(gameID, sel.Row, sel.Col)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, payload)
		if err != nil {
			return err
		}
		return wsc.gameService.SendTo(gameID, clientID, reply)

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, clientID, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := wsc.gameService.SendTo(gameID, clientID, msg); err != nil {
		log.Debugw("failed to send error", "game", gameID, "client", clientID, "error", err)
	}
}
