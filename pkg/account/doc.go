// Package account holds the user record and the request shapes shared by the
// gateway, the session store and the state engine.
//
// User mirrors the API's user object: identity fields are always present,
// profile attributes are optional pointers so that "not set" and "zero" stay
// distinguishable. ProfileUpdate is the partial document sent to
// PUT /user/profile; Apply merges it into a User the same way the API does.
//
// ParseProfileForm converts raw form values into a ProfileUpdate. Malformed
// numeric fields are coerced to zero and reported as ValidationError values
// instead of failing the whole form.
package account
