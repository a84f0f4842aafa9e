package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institute-site/utils/logger"
	"github.com/sahilchouksey/institute-site/utils/response"
	"github.com/sahilchouksey/institute-site/web"
)

// BodyLimit leaves headroom over the upload cap for multipart framing
const BodyLimit = 12 * 1024 * 1024

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "institute-site",
			Views:        web.NewEngine(),
			BodyLimit:    BodyLimit,
			ErrorHandler: ErrorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	logger.Info().Str("address", s.listenAddress).Msg("starting API server")

	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

// ErrorHandler keeps the {success:false,message} envelope for errors that escape handlers
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return response.Error(c, code, message)
}
