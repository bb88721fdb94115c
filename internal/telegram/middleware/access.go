package middleware

import tele "gopkg.in/telebot.v4"

// OwnerOptions defines how owner-only checks behave.
type OwnerOptions struct {
	OwnerID  int64
	OnReject tele.HandlerFunc
}

// OwnerOnly ensures that only the configured owner reaches downstream
// handlers. A zero OwnerID disables the check.
func OwnerOnly(opts OwnerOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.OwnerID != 0 {
				sender := c.Sender()
				if sender == nil || sender.ID != opts.OwnerID {
					if opts.OnReject != nil {
						return opts.OnReject(c)
					}
					return nil
				}
			}
			return next(c)
		}
	}
}
