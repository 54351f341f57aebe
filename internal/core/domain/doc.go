// Package domain contains the core business entities for the OpenSquare
// client: conversation entries, documents, upload transfers and the
// backend availability status. Types here carry no infrastructure
// dependencies and are shared across ports, services and adapters.
package domain
