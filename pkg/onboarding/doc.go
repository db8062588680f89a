/*
Package onboarding implements the four-step guide selection flow:

	welcome -> choose -> confirm -> reveal

A Flow holds the current step, the guide under preview and the selected guide.
How previews and selection happen depends on the input capability probed once
when the flow starts: pointer devices preview on hover and select on click,
touch devices preview on the first tap and select on a second tap of the same
guide.

Entering reveal resolves the welcome message from the selected guide's tone and
arms a completion notifier. After the dwell time the notifier stores the guide
ID under the selection key (best effort) and invokes the completion callback,
at most once. Closing the flow before that cancels both.
*/
package onboarding
