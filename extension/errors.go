package extension

import "errors"

// ErrUnknownExtensionPoint is returned by operations that require a
// registered extension point (SetExtensions, ContributeGroup,
// RemoveExtensionPoint) when the id was never added. Reads are permissive
// and never return it.
var ErrUnknownExtensionPoint = errors.New("unknown extension point")

// ErrInvalidListenerRemoval is returned when removing a (listener, id) pair
// that is not currently registered.
var ErrInvalidListenerRemoval = errors.New("listener is not registered")

// ErrInvalidBindingConfiguration is returned when an extension point is
// declared or bound with a collection shape that is not an ordered
// sequence. Extension points must be list-like.
var ErrInvalidBindingConfiguration = errors.New("extension point is not list-shaped")

// ErrUnknownGroup is returned by group operations when the group id does
// not identify a live contribution group for the extension point.
var ErrUnknownGroup = errors.New("unknown contribution group")
