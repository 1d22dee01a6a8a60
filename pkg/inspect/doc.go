/*
Package inspect implements the diagnostic algorithms of the glimpse bridge:
budget-bounded tree projection, visibility classification, style-rule
availability checks, and selector queries.

Every function is a pure function of (document state, parameters) and holds
no shared mutable state. They must only run from the host's evaluation
loop, which is the sole owner of the live document.
*/
package inspect
