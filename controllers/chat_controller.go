package controllers

import (
	"cybertech/chat"
	"cybertech/utils"
	"cybertech/validators"

	"github.com/gofiber/fiber/v2"
)

// Reply shown when the assistant call fails. No retry is attempted.
const chatErrorReply = "Sorry, an error occurred while processing your request. Please try again."

type ChatController struct {
	Assistant *chat.Assistant
}

func NewChatController(assistant *chat.Assistant) *ChatController {
	return &ChatController{Assistant: assistant}
}

func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	if cc.Assistant == nil {
		return utils.Error(c, fiber.StatusServiceUnavailable,
			fiber.NewError(fiber.StatusServiceUnavailable, "Chat assistant is not configured"))
	}

	var input struct {
		Message string         `json:"message"`
		History []chat.Message `json:"history"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := validators.ValidateStruct(validators.ChatRequest{Message: input.Message}); errs != nil {
		return utils.ValidationError(c, errs)
	}

	reply, err := cc.Assistant.Reply(c.UserContext(), input.History, input.Message)
	if err != nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"reply": chatErrorReply, "failed": true})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"reply": reply})
}
