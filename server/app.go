package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
)

type server struct {
	snapshots *flow.Snapshots
	themes    *flow.Themes
	sessions  *sessions
	logger    *zap.Logger
}

func newServer(snapshots *flow.Snapshots, themes *flow.Themes, logger *zap.Logger) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &server{
		snapshots: snapshots,
		themes:    themes,
		sessions:  newSessions(defaultSessionTTL),
		logger:    logger,
	}
}

// sweepSessions evicts idle sessions every interval until ctx is done.
func (s *server) sweepSessions(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.sessions.evictIdle(); n > 0 {
				s.logger.Info("evicted idle sessions", zap.Int("count", n), zap.Int("live", s.sessions.len()))
			}
		}
	}
}

type sessionView struct {
	ID       string      `json:"id"`
	Nodes    []flow.Node `json:"nodes"`
	Edges    []flow.Edge `json:"edges"`
	Selected *flow.Node  `json:"selected,omitempty"`
	NextID   int         `json:"nextId"`
}

func viewOf(id string, ed *flow.Editor) sessionView {
	v := sessionView{ID: id, Nodes: ed.Nodes(), Edges: ed.Edges(), NextID: ed.NextID()}
	if n, ok := ed.Selected(); ok {
		v.Selected = &n
	}
	return v
}

type createNodeRequest struct {
	Type     string        `json:"type" validate:"required,oneof=textNode imageNode videoNode"`
	Position flow.Position `json:"position"`
}

type updateFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=label text imageUrl videoUrl"`
	Value string `json:"value"`
}

type changesRequest struct {
	Nodes []flow.NodeChange `json:"nodes" validate:"dive"`
	Edges []flow.EdgeChange `json:"edges" validate:"dive"`
}

type selectRequest struct {
	ID string `json:"id" validate:"required"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func newApp(s *server) *fiber.App {
	app := fiber.New(fiber.Config{
		StructValidator: newStructValidator(),
	})
	app.Use(requestLogger(s.logger.Named("http")))

	app.Get("/palette", func(c fiber.Ctx) error {
		return c.JSON(flow.Palette())
	})

	// ── Sessions ──────────────────────────────────────────────────────
	app.Post("/sessions", func(c fiber.Ctx) error {
		ed := flow.NewEditor(
			flow.WithSnapshots(s.snapshots),
			flow.WithLogger(s.logger.Named("editor")),
		)
		if _, err := ed.Load(c.Context()); err != nil {
			// The welcome flow stays in place; the editor remains usable.
			s.logger.Warn("load saved flow", zap.Error(err))
		}
		id := s.sessions.add(ed)
		return c.Status(201).JSON(viewOf(id, ed))
	})

	app.Get("/sessions/:sid", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		return c.JSON(viewOf(c.Params("sid"), ed))
	}))

	app.Delete("/sessions/:sid", func(c fiber.Ctx) error {
		if !s.sessions.remove(c.Params("sid")) {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		return c.SendStatus(204)
	})

	// ── Nodes ─────────────────────────────────────────────────────────
	app.Post("/sessions/:sid/nodes", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		var req createNodeRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		n, err := ed.Drop(req.Type, req.Position)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(n)
	}))

	app.Patch("/sessions/:sid/nodes/:id", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		var req updateFieldRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		err := ed.UpdateNodeField(c.Params("id"), req.Field, req.Value)
		if errors.Is(err, flow.ErrNodeNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		if errors.Is(err, flow.ErrUnknownField) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	}))

	app.Delete("/sessions/:sid/nodes/:id", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		if !ed.DeleteNode(c.Params("id")) {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		return c.SendStatus(204)
	}))

	// ── Edges ─────────────────────────────────────────────────────────
	app.Post("/sessions/:sid/edges", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		var conn flow.Connection
		if err := c.Bind().JSON(&conn); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		edge, err := ed.Connect(conn)
		if errors.Is(err, flow.ErrNodeNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		if errors.Is(err, flow.ErrInvalidConnection) {
			return c.Status(409).JSON(fiber.Map{"error": "source handle already connected"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(edge)
	}))

	app.Delete("/sessions/:sid/edges/:id", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		if !ed.RemoveEdge(c.Params("id")) {
			return c.Status(404).JSON(fiber.Map{"error": "edge not found"})
		}
		return c.SendStatus(204)
	}))

	app.Post("/sessions/:sid/changes", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		var req changesRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		ed.ApplyNodeChanges(req.Nodes)
		ed.ApplyEdgeChanges(req.Edges)
		return c.JSON(viewOf(c.Params("sid"), ed))
	}))

	// ── Selection ─────────────────────────────────────────────────────
	app.Put("/sessions/:sid/selection", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		var req selectRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if !ed.Select(req.ID) {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		return c.SendStatus(204)
	}))

	app.Delete("/sessions/:sid/selection", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		ed.ClearSelection()
		return c.SendStatus(204)
	}))

	// ── Validate / save / load ────────────────────────────────────────
	app.Post("/sessions/:sid/validate", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		if err := ed.Validate(); err != nil {
			return rejectFlow(c, err)
		}
		return c.JSON(fiber.Map{"valid": true})
	}))

	app.Post("/sessions/:sid/save", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		err := ed.Save(c.Context())
		if errors.Is(err, flow.ErrAmbiguousEntryPoint) {
			return rejectFlow(c, err)
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": flow.SaveOutcome(nil)})
	}))

	app.Post("/sessions/:sid/load", s.withSession(func(c fiber.Ctx, ed *flow.Editor) error {
		loaded, err := ed.Load(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{
			"loaded": loaded,
			"nodes":  ed.Nodes(),
			"edges":  ed.Edges(),
		})
	}))

	// ── Theme ─────────────────────────────────────────────────────────
	app.Get("/theme", func(c fiber.Ctx) error {
		th, err := s.themes.Get(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"theme": th})
	})

	app.Put("/theme", func(c fiber.Ctx) error {
		var req themeRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := s.themes.Set(c.Context(), flow.Theme(req.Theme)); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"theme": req.Theme})
	})

	app.Post("/theme/toggle", func(c fiber.Ctx) error {
		th, err := s.themes.Toggle(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"theme": th})
	})

	return app
}

// withSession resolves :sid and runs fn while holding the session's lock.
func (s *server) withSession(fn func(c fiber.Ctx, ed *flow.Editor) error) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, ok := s.sessions.get(c.Params("sid"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "session not found"})
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return fn(c, sess.editor)
	}
}

func rejectFlow(c fiber.Ctx, err error) error {
	body := fiber.Map{"error": flow.SaveOutcome(err)}
	var epe *flow.EntryPointError
	if errors.As(err, &epe) {
		body["entryPoints"] = epe.Nodes
	}
	return c.Status(422).JSON(body)
}
