// Package pages implements the views the navigation controller mounts:
// the room timeline (the recyclable primary view), the add-account form
// forced on first run, and the welcome landing page.
//
// Each page validates its required properties in its factory, so a bad
// property bag fails construction instead of producing a half-usable
// view. Apply, used when the controller recycles the room page, validates
// the whole update before touching any field.
package pages
