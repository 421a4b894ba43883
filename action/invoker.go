package action

import "context"

// HandlerInvokers is the default InvokerFactory. It runs the descriptor's
// handler with the request context carrying the action context.
type HandlerInvokers struct{}

// CreateInvoker implements InvokerFactory
func (HandlerInvokers) CreateInvoker(c *Context) Invoker {
	if c == nil || c.Descriptor == nil || c.Descriptor.Handler == nil || c.Route == nil {
		return nil
	}
	return &handlerInvoker{c}
}

type handlerInvoker struct {
	c *Context
}

func (h *handlerInvoker) Invoke(ctx context.Context) error {
	// expose request-scoped items and the action context to the handler
	h.c.Route.Request = h.c.Route.RequestWithItems(WithContext(ctx, h.c))
	return h.c.Descriptor.Handler(h.c)
}
