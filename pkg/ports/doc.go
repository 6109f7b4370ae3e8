/*
Package ports defines the driven ports (interfaces) for the farebot dialogue.

These interfaces decouple the dialogue engine from external implementations:
the city directory, the fare-search provider, and session storage. Adapters
under pkg/adapters provide the production implementations; tests substitute
in-process fakes.
*/
package ports
