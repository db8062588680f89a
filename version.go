package vestibule

// Version is the release of the module. Builds override it with
// -ldflags "-X github.com/aretw0/vestibule.Version=v1.2.3".
var Version = "0.1.0-dev"
