package service

import (
	"context"

	"github.com/okian/gestures/internal/domain/dispatch"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/registry"
	"github.com/okian/gestures/internal/domain/tree"
)

// routing is the router's handler. Each input holds references on the
// elements it names; they are dropped once the dispatcher is done with it.
type routing struct {
	dispatcher *dispatch.Dispatcher
	doc        *tree.Document
}

func (r *routing) Route(ctx context.Context, s model.PointerSample) {
	r.dispatcher.Route(ctx, s)
	releaseElements(r.doc, s.Target, s.Related)
}

func (r *routing) KeyUp(ctx context.Context, k model.KeyEvent) {
	r.dispatcher.KeyUp(ctx, k)
	releaseElements(r.doc, k.Target)
}

// originRegistry keeps a reference on every live pointer's origin so the
// element outlives the inputs that named it until the pointer lifts.
type originRegistry struct {
	registry.Registry
	doc *tree.Document
}

func (o *originRegistry) Set(ctx context.Context, id model.PointerID, el model.Element) error {
	prev, had := o.Registry.Get(ctx, id)
	if err := o.Registry.Set(ctx, id, el); err != nil {
		return err
	}
	if n, ok := el.(*tree.Node); ok && n != nil {
		o.doc.Retain(n)
	}
	if had {
		releaseElements(o.doc, prev)
	}
	return nil
}

func (o *originRegistry) Delete(ctx context.Context, id model.PointerID) {
	el, ok := o.Registry.Get(ctx, id)
	o.Registry.Delete(ctx, id)
	if ok {
		releaseElements(o.doc, el)
	}
}

func releaseElements(doc *tree.Document, els ...model.Element) {
	for _, el := range els {
		if n, ok := el.(*tree.Node); ok && n != nil {
			doc.Release(n)
		}
	}
}
