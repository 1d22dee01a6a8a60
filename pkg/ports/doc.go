/*
Package ports defines the interfaces between the glimpse core and its
hosts. The live rendered document is only ever touched through Document,
and only from the host's single evaluation loop; the diagnostic algorithms
in pkg/inspect are pure functions over these interfaces.
*/
package ports
