/*
Package domain contains the core domain models for the farebot dialogue.

It defines the per-user Session and its TripState, the inbound Event and
outbound Reply shapes, and the ItineraryCandidate produced by fare search.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.
*/
package domain
