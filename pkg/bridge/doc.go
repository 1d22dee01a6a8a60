/*
Package bridge carries evaluation commands from concurrent network
handlers to the host application's single evaluation loop.

The channel is ordered: commands reach the one consumer in exact enqueue
order, however many producers contend on the send. Each command owns a
one-shot reply slot resolved exactly once by the loop and observed at most
once by the submitting handler. A handler whose deadline elapses abandons
its slot; a later resolution is dropped silently (and logged at debug
level by Serve), never delivered to an unrelated request.
*/
package bridge
