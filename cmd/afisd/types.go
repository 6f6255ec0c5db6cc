package main

import (
	"github.com/jtejido/afislr/internal/afis"
	"github.com/jtejido/afislr/internal/lr"
	"github.com/jtejido/afislr/internal/minutia"
)

type errorResponse struct {
	Error string `json:"error" cbor:"error"`
}

type verifyRequest struct {
	Query     []minutia.Minutia `json:"query" cbor:"query"`
	Candidate []minutia.Minutia `json:"candidate" cbor:"candidate"`
	// CandidateID verifies against a stored candidate instead of Candidate.
	CandidateID string `json:"candidateId,omitempty" cbor:"candidateId,omitempty"`
}

type compareRequest struct {
	Fragment1 *minutia.Fragment `json:"fragment1" cbor:"fragment1"`
	Fragment2 *minutia.Fragment `json:"fragment2" cbor:"fragment2"`
}

type lrRequest struct {
	Questioned *minutia.Fragment `json:"questioned" cbor:"questioned"`
	Reference  *minutia.Fragment `json:"reference" cbor:"reference"`
	Pattern    string            `json:"pattern,omitempty" cbor:"pattern,omitempty"`
	Rarity     float64           `json:"rarity,omitempty" cbor:"rarity,omitempty"`
}

type lrResponse struct {
	Result      *lr.Result           `json:"result,omitempty" cbor:"result,omitempty"`
	Sensitivity map[string]lr.Result `json:"sensitivity,omitempty" cbor:"sensitivity,omitempty"`
	// Empirical is set when the model ran on matched minutiae only.
	Empirical *lr.EmpiricalResult `json:"empirical,omitempty" cbor:"empirical,omitempty"`
}

type candidateRequest struct {
	ID       string            `json:"id" cbor:"id"`
	Minutiae []minutia.Minutia `json:"minutiae" cbor:"minutiae"`
}

type identifyRequest struct {
	Query      []minutia.Minutia `json:"query" cbor:"query"`
	MaxResults int               `json:"maxResults" cbor:"maxResults"`
}

type identifyResponse struct {
	Results []afis.MatchResult `json:"results" cbor:"results"`
	Elapsed string             `json:"elapsed" cbor:"elapsed"`
}

type jobResponse struct {
	JobID   string             `json:"jobId" cbor:"jobId"`
	Status  string             `json:"status" cbor:"status"`
	Results []afis.MatchResult `json:"results,omitempty" cbor:"results,omitempty"`
	Error   string             `json:"error,omitempty" cbor:"error,omitempty"`
}
