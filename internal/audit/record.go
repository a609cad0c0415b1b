package audit

import (
	"github.com/drizz21/car-rent-new/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// Record fills the acting user from the request and writes the log.
func Record(c *fiber.Ctx, w Writer, opts LogOptions) {
	if me, ok := auth.CurrentUser(c); ok {
		opts.UserID = me.UserID
		opts.UserName = me.Name
	}
	w.WriteLog(c.UserContext(), opts)
}
