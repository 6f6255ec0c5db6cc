package main

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/lr"
)

func (s *server) verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if len(req.Query) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	if req.CandidateID != "" {
		res, err := s.db.VerifyID(req.Query, req.CandidateID)
		if err != nil {
			return storeError(err)
		}
		return encode(c, res)
	}
	if len(req.Candidate) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Either candidate or candidateId is required")
	}
	return encode(c, afis.Verify(req.Query, req.Candidate, s.cfg.AFIS))
}

func (s *server) compare(c *fiber.Ctx) error {
	var req compareRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	return encode(c, afis.CompareFragments(req.Fragment1, req.Fragment2, s.cfg.Fragment))
}

// likelihood evaluates the multi-component model. ?correspondences=1 first
// pairs the fragments with the empirical matcher and keeps matched minutiae
// only; ?sensitivity=1 reports all four component combinations.
func (s *server) likelihood(c *fiber.Ctx) error {
	var req lrRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	cfg := s.cfg.Likelihood
	if req.Pattern != "" {
		cfg.Pattern = req.Pattern
	}
	if req.Rarity != 0 {
		if req.Rarity < 0 || req.Rarity > 1 {
			return fiber.NewError(fiber.StatusBadRequest, "rarity must be in (0, 1]")
		}
		cfg.Rarity = req.Rarity
	}

	var resp lrResponse
	questioned, reference := req.Questioned, req.Reference
	if c.QueryBool("correspondences") && !questioned.Empty() && !reference.Empty() {
		emp := s.cfg.Empirical.Evaluate(questioned.Minutiae, reference.Minutiae)
		resp.Empirical = &emp
		q, r := lr.Corresponded(questioned.Minutiae, reference.Minutiae, emp.Pairs)
		q.ID, q.Pattern = questioned.ID, questioned.Pattern
		r.ID, r.Pattern = reference.ID, reference.Pattern
		questioned, reference = q, r
	}

	if c.QueryBool("sensitivity") {
		resp.Sensitivity = lr.Sensitivity(questioned, reference, cfg)
	} else {
		res := lr.CalculateLR(questioned, reference, cfg)
		resp.Result = &res
	}
	return encode(c, resp)
}

func (s *server) listCandidates(c *fiber.Ctx) error {
	return encode(c, fiber.Map{"ids": s.db.IDs()})
}

func (s *server) getCandidate(c *fiber.Ctx) error {
	id := c.Params("id")
	ms, ok := s.db.Get(id)
	if !ok {
		return storeError(afis.ErrCandidateNotFound)
	}
	return encode(c, candidateRequest{ID: id, Minutiae: ms})
}

func (s *server) addCandidate(c *fiber.Ctx) error {
	var req candidateRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := s.db.Add(req.ID, req.Minutiae); err != nil {
		return storeError(err)
	}
	return encode(c.Status(fiber.StatusCreated), fiber.Map{"id": req.ID, "candidates": s.db.Len()})
}

func (s *server) removeCandidate(c *fiber.Ctx) error {
	if !s.db.Remove(c.Params("id")) {
		return storeError(afis.ErrCandidateNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *server) clearCandidates(c *fiber.Ctx) error {
	s.db.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *server) identify(c *fiber.Ctx) error {
	start := time.Now()

	var req identifyRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if len(req.Query) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	results, err := s.db.IdentifyContext(c.Context(), req.Query, req.MaxResults)
	if err != nil {
		return err
	}
	log.Printf("Identify: %d of %d candidates accepted", len(results), s.db.Len())
	return encode(c, identifyResponse{
		Results: results,
		Elapsed: time.Since(start).String(),
	})
}

func (s *server) identifyAsync(c *fiber.Ctx) error {
	var req identifyRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if len(req.Query) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	id := s.jobs.start(s.db, req.Query, req.MaxResults)
	return encode(c.Status(fiber.StatusAccepted), jobResponse{JobID: id, Status: jobRunning})
}

func (s *server) job(c *fiber.Ctx) error {
	id := c.Params("id")
	j, ok := s.jobs.get(id)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "job not found")
	}
	return encode(c, j.response(id))
}

func (s *server) cancelJob(c *fiber.Ctx) error {
	if !s.jobs.remove(c.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "job not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// storeError maps database errors to HTTP statuses.
func storeError(err error) error {
	switch {
	case errors.Is(err, afis.ErrCandidateNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, afis.ErrEmptyID), errors.Is(err, afis.ErrNoMinutiae):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
