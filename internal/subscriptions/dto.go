package subscriptions

// EndpointDTO is one registered push delivery target.
type EndpointDTO struct {
	Endpoint string `json:"endpoint"`
}

// StatusDTO reports whether the user currently receives notifications and
// which push endpoints are registered.
type StatusDTO struct {
	Subscribed bool          `json:"subscribed"`
	Endpoints  []EndpointDTO `json:"endpoints"`
}

// PushKeys carries the browser-generated encryption keys.
type PushKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// PushSubscriptionPayload mirrors the serialized PushSubscription object
// browsers hand to the page. ExpirationTime is part of
// PushSubscription.toJSON() output and is accepted but unused.
type PushSubscriptionPayload struct {
	Endpoint       string   `json:"endpoint" validate:"required,url"`
	ExpirationTime *float64 `json:"expirationTime"`
	Keys           PushKeys `json:"keys" validate:"required"`
}

// UpdateRequest is the POST body: empty toggles the opt-in flag, a
// pushSubscription registers a delivery endpoint.
type UpdateRequest struct {
	PushSubscription *PushSubscriptionPayload `json:"pushSubscription,omitempty"`
}

// RemoveEndpointRequest identifies the endpoint to unregister.
type RemoveEndpointRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}
