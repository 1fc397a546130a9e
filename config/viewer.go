package config

// DefaultViewer serves the figure over HTTP until interrupted.
const DefaultViewer = "http"
