package internal

// Version is the release version reported by --version.
const Version = "0.3.0"
