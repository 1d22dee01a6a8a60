/*
Package domain contains the core models of the glimpse inspection bridge.

It defines the typed evaluation requests, their responses, the projected
DOM tree, and the diagnostic report structures. This package is kept pure
and free of I/O, transport, and concurrency concerns, following Hexagonal
Architecture principles.

# Key Entities

  - Request: a closed set of typed evaluation commands (tree projection,
    inspect, validate-classes, diagnose, query, raw eval).
  - Response: the outcome of evaluating a single Request, success or failure.
  - DomNode / TreeResult: the budget-bounded projection of the live document.
  - DiagnosticResult: the aggregate visibility/health scan of the document.
*/
package domain
