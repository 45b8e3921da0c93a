package commerce

// The platform exposes a GraphQL storefront API. Only two operations are
// used: create a session with an initial set of lines, and append lines to
// an existing session. Both return the session id, the checkout URL and a
// list of field-level validation errors.

const cartCreateMutation = `
mutation cartCreate($lines: [CartLineInput!]!) {
  cartCreate(input: { lines: $lines }) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

const cartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`
